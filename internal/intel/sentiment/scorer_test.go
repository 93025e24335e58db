// internal/intel/sentiment/scorer_test.go
package sentiment

import (
	"testing"

	"brand-intel/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Scoring Tests
// ==========================

func TestScore_EmptyText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \t\n  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(tt.text)
			assert.Equal(t, 0.0, result.Score)
			assert.Equal(t, models.SentimentNeutral, result.Label)
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	text := "Supreme dropped the best hoodie ever!! kinda mid tho"

	first := Score(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(text))
	}
}

func TestScore_Polarity(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		label string
	}{
		{
			name:  "clearly positive",
			text:  "Supreme dropped the best hoodie ever!!",
			label: models.SentimentPositive,
		},
		{
			name:  "clearly negative",
			text:  "this fit is trash and overpriced",
			label: models.SentimentNegative,
		},
		{
			name:  "no sentiment words",
			text:  "the store opens at ten tomorrow",
			label: models.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(tt.text)
			assert.Equal(t, tt.label, result.Label)
		})
	}
}

func TestScore_NegationFlipsPolarity(t *testing.T) {
	plain := Score("this hoodie is good")
	negated := Score("this hoodie is not good")

	assert.Equal(t, models.SentimentPositive, plain.Label)
	assert.Less(t, negated.Score, plain.Score)
}

func TestScore_ExclamationEmphasis(t *testing.T) {
	// "kinda" keeps the rule estimate below the clamp so the boost is visible.
	calm := Score("kinda good")
	excited := Score("kinda good!!!")

	assert.Greater(t, excited.Score, calm.Score)
}

func TestScore_IntensifierScaling(t *testing.T) {
	weak := Score("kinda good")
	strong := Score("very good")

	assert.Greater(t, strong.Score, weak.Score)
}

func TestScore_Bounded(t *testing.T) {
	texts := []string{
		"best best best amazing fire grail!!!!!!",
		"worst trash garbage awful horrible scam!!!!!!",
		"VERY GOOD VERY BAD not never so extremely",
		"plain text with nothing in it",
	}

	for _, text := range texts {
		result := Score(text)
		assert.GreaterOrEqual(t, result.Score, -1.0, "text: %s", text)
		assert.LessOrEqual(t, result.Score, 1.0, "text: %s", text)
	}
}

// ==========================
// Classification Tests
// ==========================

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		score float64
		label string
	}{
		{0.5, models.SentimentPositive},
		{0.11, models.SentimentPositive},
		{0.1, models.SentimentNeutral},
		{0.0, models.SentimentNeutral},
		{-0.1, models.SentimentNeutral},
		{-0.11, models.SentimentNegative},
		{-0.5, models.SentimentNegative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, Classify(tt.score), "score: %v", tt.score)
	}
}
