// Package extract defines the text-extraction boundary the dedup and
// classification engines consume.
//
// The core never extracts text itself; it asks an Extractor and tolerates an
// empty answer. The bundled extractors cover plain-text formats and RFC 5322
// email files. Binary formats (PDF, word processor documents) return "";
// deployments wire richer extractors behind the same interface.
package extract

import (
	"path/filepath"
	"strings"
)

// Extractor produces searchable text for a file. Implementations return ""
// when the format is unsupported or extraction fails; callers must treat an
// empty result as "no text available", never as an error.
type Extractor interface {
	// Text returns up to limit characters of extracted text for the file.
	// A limit <= 0 means no cap.
	Text(path string, limit int) string
}

// Func adapts a plain function to the Extractor interface.
type Func func(path string, limit int) string

func (f Func) Text(path string, limit int) string { return f(path, limit) }

// ByExtension dispatches to extension-specific extractors.
type ByExtension map[string]Extractor

func (m ByExtension) Text(path string, limit int) string {
	ext := strings.ToLower(filepath.Ext(path))
	if extractor, ok := m[ext]; ok {
		return extractor.Text(path, limit)
	}
	return ""
}

// Default returns the bundled extractor set: plain-text formats plus .eml
// email files.
func Default() Extractor {
	plain := Func(plainText)
	email := Func(emailText)
	return ByExtension{
		".txt":  plain,
		".md":   plain,
		".csv":  plain,
		".rtf":  plain,
		".html": plain,
		".htm":  plain,
		".eml":  email,
	}
}

func truncate(text string, limit int) string {
	if limit > 0 && len(text) > limit {
		return text[:limit]
	}
	return text
}
