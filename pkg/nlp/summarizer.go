// Package nlp provides the text services consumed by the resolution
// pipeline: an extractive summarizer and a lexicon-based sentiment
// scorer. Both are pure functions of their input with no I/O and no
// shared state, so they are safe for unrestricted concurrent use.
package nlp

import (
	"sort"
	"strings"
	"unicode"
)

// SummarySentences is the number of sentences an extractive summary
// keeps.
const SummarySentences = 3

// stopwords are excluded from frequency scoring.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "but": true, "by": true, "for": true,
	"from": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "in": true, "is": true, "it": true, "its": true,
	"of": true, "on": true, "or": true, "said": true, "she": true,
	"that": true, "the": true, "their": true, "they": true, "this": true,
	"to": true, "was": true, "were": true, "which": true, "will": true,
	"with": true, "would": true,
}

// Summarize produces an extractive summary: sentences are scored by
// the document frequency of their content words and the top few are
// returned in their original order. Input at or below the target
// length is returned unchanged.
func Summarize(text string) string {
	sentences := splitSentences(text)
	if len(sentences) <= SummarySentences {
		return strings.TrimSpace(text)
	}

	freq := wordFrequencies(text)

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, sentence := range sentences {
		var total float64
		words := tokenize(sentence)
		for _, w := range words {
			total += freq[w]
		}
		if len(words) > 0 {
			// Normalize so long sentences don't win by length alone.
			total /= float64(len(words))
		}
		ranked[i] = scored{index: i, score: total}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	top := ranked[:SummarySentences]
	sort.Slice(top, func(a, b int) bool {
		return top[a].index < top[b].index
	})

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = sentences[s.index]
	}
	return strings.Join(parts, " ")
}

// splitSentences breaks text on terminal punctuation. Good enough for
// news prose; abbreviation handling is intentionally not attempted.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// wordFrequencies counts content words, case-folded.
func wordFrequencies(text string) map[string]float64 {
	freq := make(map[string]float64)
	for _, w := range tokenize(text) {
		freq[w]++
	}
	return freq
}

// tokenize lowercases and splits on non-letter runes, dropping
// stopwords and single letters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	words := fields[:0]
	for _, w := range fields {
		if len(w) > 1 && !stopwords[w] {
			words = append(words, w)
		}
	}
	return words
}
