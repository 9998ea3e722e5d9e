package disclosure

import "strings"

// Scope classifies how much a question is asking for. Greetings get no
// outbreak facts; only explicit broad prompts earn an overview.
type Scope string

const (
	ScopeGreeting Scope = "greeting"
	ScopeBroad    Scope = "broad"
	ScopeNarrow   Scope = "narrow"
)

var greetingWords = []string{"hi", "hello", "good morning", "good afternoon", "good evening"}

var broadPhrases = []string{
	"tell me everything",
	"tell me what you know",
	"explain the whole situation",
	"give me an overview",
	"summarize everything",
	"what do you know about this outbreak",
}

var vaguePhrases = []string{
	"how are things",
	"how is everything",
	"what s going on",
	"what is going on",
	"what is happening",
	"how have you been",
	"how s your day",
}

// ClassifyScope buckets a trainee question into greeting, broad, or narrow.
func ClassifyScope(question string) Scope {
	text := Normalize(question)
	for _, w := range greetingWords {
		normalized := Normalize(w)
		if text == normalized || strings.HasPrefix(text, normalized+" ") {
			return ScopeGreeting
		}
	}
	for _, p := range broadPhrases {
		if text == Normalize(p) {
			return ScopeBroad
		}
	}
	for _, p := range vaguePhrases {
		if containsPhrase(text, p) {
			return ScopeGreeting
		}
	}
	return ScopeNarrow
}
