package contract

import "strings"

const fence = "```"

// Sanitize isolates the candidate JSON in raw generator output. It trims
// whitespace and, when the text opens with a code fence (with or without a
// language tag), removes that opening marker and the closing fence. Exactly
// one fence pair is removed; nothing else is parsed or repaired.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, fence) {
		return s
	}

	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = dropInlineTag(s[len(fence):])
	}

	s = strings.TrimRightFunc(s, isSpace)
	s = strings.TrimSuffix(s, fence)

	return strings.TrimSpace(s)
}

// dropInlineTag removes a language tag on a single-line fence ("```json {...}```")
func dropInlineTag(s string) string {
	i := 0
	for i < len(s) && (s[i] >= 'a' && s[i] <= 'z' || s[i] >= 'A' && s[i] <= 'Z') {
		i++
	}
	if i > 0 && i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		return s[i:]
	}
	return s
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
