package nlp

// SentimentResult is the outcome of scoring one text.
type SentimentResult struct {
	Label    string  `json:"label"` // "positive", "negative", "neutral"
	Score    float64 `json:"score"` // [-1, 1]
	Positive int     `json:"positive_hits"`
	Negative int     `json:"negative_hits"`
}

// Lexicons for rule-based scoring, weighted toward news vocabulary.
var (
	positiveWords = map[string]bool{
		"advance": true, "beat": true, "best": true, "boom": true,
		"breakthrough": true, "celebrate": true, "gain": true, "gains": true,
		"good": true, "great": true, "grow": true, "growth": true,
		"happy": true, "improve": true, "improved": true, "positive": true,
		"profit": true, "progress": true, "promising": true, "rally": true,
		"rallied": true, "record": true, "recovery": true, "rise": true,
		"rose": true, "strong": true, "strongly": true, "success": true,
		"successful": true, "surge": true, "up": true, "win": true,
		"wins": true, "won": true,
	}

	negativeWords = map[string]bool{
		"bad": true, "collapse": true, "crash": true, "crisis": true,
		"cut": true, "cuts": true, "damage": true, "decline": true,
		"declined": true, "deficit": true, "down": true, "drop": true,
		"dropped": true, "fail": true, "failed": true, "failure": true,
		"fall": true, "fear": true, "fell": true, "fraud": true,
		"loss": true, "losses": true, "lost": true, "negative": true,
		"plunge": true, "poor": true, "recession": true, "risk": true,
		"slump": true, "threat": true, "weak": true, "worst": true,
	}
)

// AnalyzeSentiment scores text against the lexicons. The score is the
// signed share of sentiment-bearing words; a text with no hits in
// either lexicon is neutral with score 0.
func AnalyzeSentiment(text string) SentimentResult {
	var pos, neg int
	for _, w := range tokenize(text) {
		switch {
		case positiveWords[w]:
			pos++
		case negativeWords[w]:
			neg++
		}
	}

	result := SentimentResult{
		Positive: pos,
		Negative: neg,
	}

	total := pos + neg
	if total == 0 {
		result.Label = "neutral"
		return result
	}

	result.Score = float64(pos-neg) / float64(total)
	switch {
	case result.Score > 0.1:
		result.Label = "positive"
	case result.Score < -0.1:
		result.Label = "negative"
	default:
		result.Label = "neutral"
	}
	return result
}
