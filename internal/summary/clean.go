package summary

import "strings"

// cleanupPass is a single named transformation applied to raw model output
// before JSON parsing. Passes are individually testable and each is a no-op
// on already-clean input, so the whole pipeline is idempotent.
type cleanupPass struct {
	name  string
	apply func(string) string
}

// cleanupPasses run in order. The original service also deleted every
// newline character before parsing, which corrupts legitimate multi-line
// string values; the brace-window pass covers the same wrapping cases
// (prose or fences around the object) without being destructive.
var cleanupPasses = []cleanupPass{
	{"trim_space", strings.TrimSpace},
	{"strip_leading_fence", stripLeadingFence},
	{"strip_trailing_fence", stripTrailingFence},
	{"trim_stray_backticks", trimStrayBackticks},
	{"brace_window", braceWindow},
}

// Clean runs the full cleanup pipeline over raw completion text.
func Clean(raw string) string {
	s := raw
	for _, p := range cleanupPasses {
		s = strings.TrimSpace(p.apply(s))
	}
	return s
}

// stripLeadingFence removes an opening markdown code fence, with or without
// a language tag ("```json", "```").
func stripLeadingFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the language tag up to the first newline, if any.
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		tag := strings.TrimSpace(s[:idx])
		if tag == "" || isFenceTag(tag) {
			return s[idx+1:]
		}
	}
	return s
}

// stripTrailingFence removes a closing markdown code fence.
func stripTrailingFence(s string) string {
	trimmed := strings.TrimRight(s, " \t\n")
	if strings.HasSuffix(trimmed, "```") {
		return strings.TrimSuffix(trimmed, "```")
	}
	return s
}

// trimStrayBackticks drops single backticks wrapping the payload. Backticks
// inside the payload are left alone; they may be legitimate Markdown in a
// string value.
func trimStrayBackticks(s string) string {
	return strings.Trim(s, "`")
}

// braceWindow narrows the text to the outermost {...} window when one
// exists, discarding any prose the model added around the JSON object.
func braceWindow(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// isFenceTag reports whether tag looks like a code-fence language tag.
func isFenceTag(tag string) bool {
	for _, r := range tag {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return len(tag) <= 12
}
