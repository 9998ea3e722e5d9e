package disclosure

import (
	"strings"
	"unicode"
)

// Normalize lowercases a question and collapses everything that is not a
// letter or digit into single spaces. All topic matching happens on
// normalized text so the policy stays deterministic for free-typed input.
func Normalize(text string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastSpace = false
		} else if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Matches reports whether the question matches a topic key or any of its
// authored keywords.
//
// The policy, in order: the normalized question equals the normalized key,
// or the normalized question contains the key or a keyword as a whole-word
// phrase. This is the single matching function the resolution order is
// built on; call sites must not add their own containment checks.
func Matches(question, topic string, keywords []string) bool {
	normalized := Normalize(question)
	if normalized == "" {
		return false
	}
	if normalized == Normalize(topic) {
		return true
	}
	if containsPhrase(normalized, Normalize(topic)) {
		return true
	}
	for _, keyword := range keywords {
		if containsPhrase(normalized, Normalize(keyword)) {
			return true
		}
	}
	return false
}

// containsPhrase reports whether text contains phrase on word boundaries.
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		startOK := start == 0 || text[start-1] == ' '
		endOK := end == len(text) || text[end] == ' '
		if startOK && endOK {
			return true
		}
		idx = start + 1
		if idx >= len(text) {
			return false
		}
	}
}
