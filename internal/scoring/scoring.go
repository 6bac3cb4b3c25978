package scoring

import (
	"math"

	"github.com/AnuroopSrivastava/Verdictify/internal/models"
)

// Thresholds are the lower bounds (inclusive) of each verdict band.
type Thresholds struct {
	StrongBuy   int `yaml:"strong_buy"`
	Recommended int `yaml:"recommended"`
	Caution     int `yaml:"caution"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{StrongBuy: 75, Recommended: 60, Caution: 45}
}

type Result struct {
	AvgRating     float64
	WeightedScore int
	Confidence    int
	Verdict       models.Verdict
}

func (t Thresholds) Verdict(score int) models.Verdict {
	switch {
	case score >= t.StrongBuy:
		return models.StrongBuy
	case score >= t.Recommended:
		return models.Recommended
	case score >= t.Caution:
		return models.Caution
	default:
		return models.NotRecommended
	}
}

func WeightedScore(avg float64) int {
	return clampPct(math.Round(avg / 5 * 100))
}

// Confidence blends how one-sided the sentiment is with how far the
// average rating sits from the neutral 3.
func Confidence(tally models.SentimentTally, avg float64, n int) int {
	if n == 0 {
		return 0
	}
	sentimentStrength := math.Abs(float64(tally.Positive-tally.Negative)) / float64(n)
	ratingStrength := math.Min(math.Abs(avg-3)/2, 1)
	return clampPct(math.Round((sentimentStrength + ratingStrength) / 2 * 100))
}

func (t Thresholds) Score(reviews []models.Review, tally models.SentimentTally) Result {
	if len(reviews) == 0 {
		return Result{Verdict: models.NotRecommended}
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := sum / float64(len(reviews))
	score := WeightedScore(avg)
	return Result{
		AvgRating:     avg,
		WeightedScore: score,
		Confidence:    Confidence(tally, avg, len(reviews)),
		Verdict:       t.Verdict(score),
	}
}

func clampPct(v float64) int {
	return int(math.Min(math.Max(v, 0), 100))
}
