package classify

import "regexp"

// Identifier patterns mined from filenames and document text to resolve
// {client} and {matter} template placeholders. Ordered from most to least
// specific; the first two distinct captures win.
var identifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)client[_\s-]*(?:id|no|num)?[_\s:#-]*([A-Za-z0-9]{3,20})`),
	regexp.MustCompile(`(?i)matter[_\s-]*(?:id|no|num)?[_\s:#-]*([A-Za-z0-9]{3,20})`),
	regexp.MustCompile(`\b([A-Z]{2,5}-\d{3,6})\b`),
}

// ExtractIdentifiers scans the filename and a bounded prefix of extracted
// text for client and matter identifiers. Each pattern runs over the
// combined filename-plus-text haystack before the next pattern is tried, so
// keyword-tagged captures beat generic docket codes wherever they appear.
func ExtractIdentifiers(filename, text string, scanChars int) map[Placeholder]string {
	if scanChars > 0 && len(text) > scanChars {
		text = text[:scanChars]
	}
	haystack := filename
	if text != "" {
		haystack = filename + "\n" + text
	}
	vars := make(map[Placeholder]string, 2)
	assign := func(value string) {
		if value == "" {
			return
		}
		if existing, ok := vars[PlaceholderClient]; !ok {
			vars[PlaceholderClient] = value
		} else if _, ok := vars[PlaceholderMatter]; !ok && existing != value {
			vars[PlaceholderMatter] = value
		}
	}
	for _, pattern := range identifierPatterns {
		for _, match := range pattern.FindAllStringSubmatch(haystack, -1) {
			assign(match[1])
			if len(vars) == 2 {
				return vars
			}
		}
	}
	return vars
}
