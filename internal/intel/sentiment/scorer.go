// internal/intel/sentiment/scorer.go
package sentiment

import (
	"strings"
	"unicode"

	"brand-intel/internal/models"
)

// Classification thresholds. Scores within ±0.1 of zero are neutral; these
// constants are shared with downstream consumers and must not drift.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

const (
	negationWindow  = 2
	exclaimBoost    = 0.10
	maxExclaimBoost = 0.50
	capsScale       = 1.2
)

// Score computes a blended sentiment polarity for a block of text.
// Two independent estimates are averaged: a lexicon hit-ratio estimate and a
// rule-based estimate that accounts for negation, intensifiers and
// punctuation emphasis. The result is deterministic for identical input.
func Score(text string) models.SentimentScore {
	if strings.TrimSpace(text) == "" {
		return models.SentimentScore{Score: 0.0, Label: models.SentimentNeutral}
	}

	tokens := tokenize(text)
	blended := clamp((lexiconEstimate(tokens) + ruleEstimate(tokens, text)) / 2.0)

	return models.SentimentScore{Score: blended, Label: Classify(blended)}
}

// Classify maps a bounded score to its three-way label.
func Classify(score float64) string {
	switch {
	case score > PositiveThreshold:
		return models.SentimentPositive
	case score < NegativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// lexiconEstimate is the hit-ratio polarity: matched positive minus negative
// words, normalized by total hits. No hits means no signal.
func lexiconEstimate(tokens []string) float64 {
	positive, negative := 0, 0
	for _, tok := range tokens {
		word := strings.ToLower(tok)
		if positiveWords[word] {
			positive++
		} else if negativeWords[word] {
			negative++
		}
	}
	hits := positive + negative
	if hits == 0 {
		return 0.0
	}
	return float64(positive-negative) / float64(hits)
}

// ruleEstimate walks the token stream applying negation flips, intensifier
// scaling and uppercase emphasis per lexicon hit, then boosts the magnitude
// for repeated exclamation marks.
func ruleEstimate(tokens []string, raw string) float64 {
	sum := 0.0
	hits := 0

	for i, tok := range tokens {
		word := strings.ToLower(tok)

		valence := 0.0
		if positiveWords[word] {
			valence = 1.0
		} else if negativeWords[word] {
			valence = -1.0
		}
		if valence == 0.0 {
			continue
		}

		scale := 1.0
		for back := 1; back <= negationWindow && i-back >= 0; back++ {
			prev := strings.ToLower(tokens[i-back])
			if negators[prev] {
				valence = -valence
				break
			}
			if w, ok := intensifiers[prev]; ok {
				scale *= w
			}
		}

		if isShouting(tok) {
			scale *= capsScale
		}

		sum += valence * scale
		hits++
	}

	if hits == 0 {
		return 0.0
	}

	estimate := sum / float64(hits)

	if boost := exclaimEmphasis(raw); boost > 0 {
		estimate *= 1.0 + boost
	}

	return clamp(estimate)
}

// exclaimEmphasis adds 10% magnitude per exclamation mark beyond the first,
// capped at 50%.
func exclaimEmphasis(raw string) float64 {
	count := strings.Count(raw, "!")
	if count <= 1 {
		return 0.0
	}
	boost := float64(count-1) * exclaimBoost
	if boost > maxExclaimBoost {
		boost = maxExclaimBoost
	}
	return boost
}

// isShouting reports whether a token is an all-caps word of 3+ letters.
func isShouting(tok string) bool {
	letters := 0
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return letters >= 3
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func clamp(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}
