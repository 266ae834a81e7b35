// Package logging builds the slog loggers used across docket.
//
// It supports console and JSON output, optional file tee targets, and
// standardized attribute keys so batch commands and the watch daemon emit
// uniform structured events. Use the helper constructors (String, Int,
// Error, ...) instead of raw slog attrs to keep field naming consistent.
package logging
