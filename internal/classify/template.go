package classify

import (
	"fmt"
	"strings"
)

// Placeholder names the closed set of dynamic template variables.
type Placeholder string

const (
	PlaceholderClient Placeholder = "client"
	PlaceholderMatter Placeholder = "matter"
)

// Sentinels substituted for placeholders no identifier could resolve.
const (
	UnknownClient = "_UNKNOWN_CLIENT"
	UnknownMatter = "_UNKNOWN_MATTER"
)

var placeholderSentinels = map[Placeholder]string{
	PlaceholderClient: UnknownClient,
	PlaceholderMatter: UnknownMatter,
}

type segment struct {
	literal     string
	placeholder Placeholder
	isVar       bool
}

// Template is a destination path template: literal segments interleaved with
// placeholders from the closed set. Parsing rejects unknown placeholders so
// typos in rule files surface at load time, not at migration time.
type Template struct {
	raw      string
	segments []segment
}

// ParseTemplate validates and compiles a target template.
func ParseTemplate(raw string) (Template, error) {
	tmpl := Template{raw: raw}
	rest := raw
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			if rest != "" {
				tmpl.segments = append(tmpl.segments, segment{literal: rest})
			}
			return tmpl, nil
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			return Template{}, fmt.Errorf("target %q: unterminated placeholder", raw)
		}
		if open > 0 {
			tmpl.segments = append(tmpl.segments, segment{literal: rest[:open]})
		}
		name := Placeholder(rest[open+1 : open+closing])
		if _, known := placeholderSentinels[name]; !known {
			return Template{}, fmt.Errorf("target %q: unknown placeholder {%s}", raw, name)
		}
		tmpl.segments = append(tmpl.segments, segment{placeholder: name, isVar: true})
		rest = rest[open+closing+1:]
	}
}

// HasPlaceholders reports whether resolution is needed at classification time.
func (t Template) HasPlaceholders() bool {
	for _, seg := range t.segments {
		if seg.isVar {
			return true
		}
	}
	return false
}

// Resolve substitutes placeholders from vars, falling back to the fixed
// sentinel for any placeholder vars does not cover.
func (t Template) Resolve(vars map[Placeholder]string) string {
	var b strings.Builder
	for _, seg := range t.segments {
		if !seg.isVar {
			b.WriteString(seg.literal)
			continue
		}
		if value, ok := vars[seg.placeholder]; ok && value != "" {
			b.WriteString(value)
		} else {
			b.WriteString(placeholderSentinels[seg.placeholder])
		}
	}
	return b.String()
}

// String returns the unresolved template text.
func (t Template) String() string {
	return t.raw
}
