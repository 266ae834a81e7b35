package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks malformed rule sets, taxonomy files, or settings.
	// Configuration errors are fatal and abort before any file processing.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks inputs that fail invariant checks.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks sources that vanished between planning and execution.
	ErrNotFound = errors.New("not found")
	// ErrVerification marks post-copy digest mismatches.
	ErrVerification = errors.New("verification failed")
	// ErrTransient marks per-file I/O faults that do not abort the batch.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err should abort the whole run rather than be
// recorded against a single file.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
