// Package pipeline defines the error taxonomy shared by the batch stages and
// the watch daemon.
//
// Stages tag failures with sentinel markers so callers can distinguish fatal
// configuration problems (abort before any file is touched) from per-file
// faults that are recorded and skipped. Wrap builds uniform error messages
// carrying stage and operation context.
package pipeline
