package classifier

import (
	"math"

	"github.com/AnuroopSrivastava/Verdictify/internal/models"
)

// Cutoffs split ratings into sentiment buckets: above PositiveAbove is
// positive, below NegativeBelow is negative, anything between is neutral.
type Cutoffs struct {
	PositiveAbove float64 `yaml:"positive_above"`
	NegativeBelow float64 `yaml:"negative_below"`
}

func DefaultCutoffs() Cutoffs {
	return Cutoffs{PositiveAbove: 3.8, NegativeBelow: 2.5}
}

type Classifier struct {
	cutoffs Cutoffs
}

func New(c Cutoffs) *Classifier { return &Classifier{cutoffs: c} }

type Sentiment int

const (
	Negative Sentiment = iota
	Neutral
	Positive
)

func (c *Classifier) Sentiment(rating float64) Sentiment {
	switch {
	case rating > c.cutoffs.PositiveAbove:
		return Positive
	case rating >= c.cutoffs.NegativeBelow:
		return Neutral
	default:
		return Negative
	}
}

// Star is the histogram bucket for rating.
func Star(rating float64) int {
	s := int(math.Round(rating))
	return min(max(s, 1), 5)
}

func (c *Classifier) Tally(reviews []models.Review) models.SentimentTally {
	t := models.SentimentTally{StarCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	for _, r := range reviews {
		switch c.Sentiment(r.Rating) {
		case Positive:
			t.Positive++
		case Neutral:
			t.Neutral++
		default:
			t.Negative++
		}
		t.StarCounts[Star(r.Rating)]++
	}
	return t
}
