package ai

import (
	"regexp"
	"strings"
)

// StripCodeFences removes a markdown code fence wrapping the response, with
// or without a language tag. Unfenced text comes back trimmed but otherwise
// unchanged.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	firstNewline := strings.Index(trimmed, "\n")
	if firstNewline == -1 {
		return trimmed
	}
	lastFence := strings.LastIndex(trimmed, "```")
	if lastFence <= firstNewline {
		return trimmed
	}
	return strings.TrimSpace(trimmed[firstNewline+1 : lastFence])
}

// ExtractSection pulls the text following "LABEL:" up to the next all-caps
// label line or the end of the response. Matching is case-insensitive; an
// absent section yields "".
func ExtractSection(text, label string) string {
	pattern := regexp.MustCompile(
		`(?s)(?:^|\n)\s*(?i:` + regexp.QuoteMeta(label) + `)\s*:\s*(.*?)(?:\n\s*[A-Z][A-Z ]{2,}:|$)`,
	)
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

var bulletPrefix = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)

// SplitBullets collects the bullet items of a response block ("- ", "* ",
// "• " or "1." style). Non-bullet lines are dropped.
func SplitBullets(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		prefix := bulletPrefix.FindString(line)
		if prefix == "" {
			continue
		}
		item := strings.TrimSpace(strings.TrimPrefix(line, prefix))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
