package voice

import (
	"strings"

	"golang.org/x/text/cases"
)

// targetWordSet holds the 8 unique words of TargetPhrase.
var targetWordSet = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(TargetPhrase) {
		set[w] = struct{}{}
	}
	return set
}()

// NormalizeWord lowercases a recognized word with Unicode case folding and
// strips surrounding whitespace and trailing punctuation, matching how the
// transcription output is cleaned before comparison.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	word = cases.Fold().String(word)
	return strings.TrimRight(word, ".,!?;:")
}

// CountWords counts whitespace-separated words in a transcript.
func CountWords(transcript string) int {
	return len(strings.Fields(transcript))
}

// MatchedUniqueTargets counts how many of the unique target-phrase words
// appear in the transcript after normalization.
func MatchedUniqueTargets(transcript string) int {
	matched := make(map[string]struct{})
	for _, raw := range strings.Fields(transcript) {
		w := NormalizeWord(raw)
		if w == "" {
			continue
		}
		if _, ok := targetWordSet[w]; ok {
			matched[w] = struct{}{}
		}
	}
	return len(matched)
}
