// Package config loads, normalizes, and validates docket configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The rule set and taxonomy referenced from
// here are separate YAML documents owned by the classify and taxonomy
// packages; this package only locates them.
//
// Always obtain settings through Load so downstream code receives sanitized
// absolute paths and clear validation errors before any file is touched.
package config
