package summarizer

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	fallbackSentences   = 3
	minSentenceLength   = 20
	fallbackMaxRunChars = 600
)

var (
	stripPolicy   = bluemonday.StrictPolicy()
	sentenceSplit = regexp.MustCompile(`(?s)(.*?[.!?])(?:\s+|$)`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Extract produces a deterministic extractive summary: HTML is stripped,
// the plain text is split into sentences and the first few substantive
// ones are joined back together. No network, no randomness.
func Extract(content string) string {
	text := whitespace.ReplaceAllString(stripPolicy.Sanitize(content), " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var picked []string
	for _, m := range sentenceSplit.FindAllStringSubmatch(text, -1) {
		sentence := strings.TrimSpace(m[1])
		if len(sentence) < minSentenceLength {
			continue
		}
		picked = append(picked, sentence)
		if len(picked) == fallbackSentences {
			break
		}
	}

	// Text without sentence punctuation at all, e.g. a single headline-like
	// run. Truncate rather than return nothing.
	if len(picked) == 0 {
		if len(text) > fallbackMaxRunChars {
			text = strings.TrimSpace(text[:fallbackMaxRunChars])
		}
		picked = []string{text}
	}

	summary := strings.Join(picked, " ")
	if !strings.HasSuffix(summary, ".") && !strings.HasSuffix(summary, "!") && !strings.HasSuffix(summary, "?") {
		summary += "."
	}
	return summary
}
