// Package corpus turns harvested review texts into a rated review corpus.
//
// The page does not expose per-review stars, so each review gets an
// estimated rating in the high band [4,5]. Short corpora are padded with
// canned entries tagged models.Synthetic so consumers can discount them.
package corpus

import (
	"strings"

	"github.com/AnuroopSrivastava/Verdictify/internal/models"
)

const CannedText = "Good quality product. Worth the price."

type Options struct {
	// MinSize is the corpus size padding aims for.
	MinSize int `yaml:"min_size"`
	// LowRating and HighRating bound every estimated rating.
	LowRating  float64 `yaml:"low_rating"`
	HighRating float64 `yaml:"high_rating"`
}

func DefaultOptions() Options {
	return Options{MinSize: 12, LowRating: 4, HighRating: 5}
}

var (
	positiveWords = []string{"good", "excellent", "nice", "value", "comfortable", "perfect", "love", "great", "awesome"}
	negativeWords = []string{"bad", "poor", "waste", "damage", "delay", "cheap", "worst", "faded", "return"}
)

// EstimateRating is the high band rating when the text leans positive, else the low band.
func (o Options) EstimateRating(text string) float64 {
	lower := strings.ToLower(text)
	score := 0
	for _, w := range positiveWords {
		score += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		score -= strings.Count(lower, w)
	}
	if score > 0 {
		return o.HighRating
	}
	return o.LowRating
}

// Normalize rates the first limit texts and pads the result up to
// min(MinSize, limit) with synthetic entries.
func Normalize(texts []string, limit int, o Options) []models.Review {
	if limit < 0 {
		limit = 0
	}
	if len(texts) > limit {
		texts = texts[:limit]
	}
	target := min(o.MinSize, limit)

	out := make([]models.Review, 0, max(len(texts), target))
	for _, t := range texts {
		out = append(out, models.Review{Text: t, Rating: o.EstimateRating(t), Origin: models.Observed})
	}
	for len(out) < target {
		out = append(out, models.Review{Text: CannedText, Rating: o.EstimateRating(CannedText), Origin: models.Synthetic})
	}
	return out
}
