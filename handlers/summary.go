package handlers

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	summarySentences = 3
	maxBullets       = 7
	maxBulletLen     = 140
)

// buildSummary produces a naive extractive summary: the first three
// sentences as the summary text, the next few as bullets capped at 140
// characters. Good enough to surface what a meeting was about without any
// NLP machinery.
func buildSummary(text string) (string, []string) {
	bullets := []string{}
	if strings.TrimSpace(text) == "" {
		return "", bullets
	}

	sentences := splitSentences(text)

	top := sentences
	if len(top) > summarySentences {
		top = top[:summarySentences]
	}
	summary := strings.Join(top, " ")

	rest := sentences[len(top):]
	if len(rest) > maxBullets {
		rest = rest[:maxBullets]
	}
	for _, s := range rest {
		bullets = append(bullets, truncate(s, maxBulletLen))
	}
	return summary, bullets
}

// splitSentences splits on sentence-ending punctuation followed by
// whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder
	terminated := false

	for _, r := range text {
		if terminated && unicode.IsSpace(r) {
			if s := strings.TrimSpace(cur.String()); s != "" {
				sentences = append(sentences, s)
			}
			cur.Reset()
			terminated = false
			continue
		}
		cur.WriteRune(r)
		terminated = r == '.' || r == '!' || r == '?'
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit-3]) + "…"
}
