package service

import (
	"regexp"
	"strings"
)

var (
	reFenceStart = regexp.MustCompile("(?is)^\\s*```(?:markdown|md|text)?\\s*")
	reFenceEnd   = regexp.MustCompile("(?is)\\s*```\\s*$")
)

// cleanLLMTextResponse quita fences ```markdown ... ``` y BOM, dejando el texto usable.
func cleanLLMTextResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")

	s = reFenceStart.ReplaceAllString(s, "")
	s = reFenceEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// mentionsAny devuelve el primer nombre que aparece en text, sin distinguir mayúsculas.
func mentionsAny(text string, names []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && strings.Contains(lower, n) {
			return n, true
		}
	}
	return "", false
}
