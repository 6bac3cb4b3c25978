package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnuroopSrivastava/Verdictify/internal/models"
)

func TestWeightedScore(t *testing.T) {
	assert.Equal(t, 90, WeightedScore(4.5))
	assert.Equal(t, 60, WeightedScore(3.0))
	assert.Equal(t, 100, WeightedScore(5.0))
	assert.Equal(t, 0, WeightedScore(0))
	assert.Equal(t, 100, WeightedScore(6))
}

func TestVerdictBands(t *testing.T) {
	th := DefaultThresholds()
	cases := map[int]models.Verdict{
		100: models.StrongBuy,
		75:  models.StrongBuy,
		74:  models.Recommended,
		60:  models.Recommended,
		59:  models.Caution,
		45:  models.Caution,
		44:  models.NotRecommended,
		0:   models.NotRecommended,
	}
	for score, want := range cases {
		assert.Equal(t, want, th.Verdict(score), "score %d", score)
	}
}

func TestConfidenceZeroWhenBalanced(t *testing.T) {
	tally := models.SentimentTally{Positive: 3, Neutral: 4, Negative: 3}
	assert.Equal(t, 0, Confidence(tally, 3, 10))
}

func TestConfidenceBounds(t *testing.T) {
	for pos := 0; pos <= 10; pos++ {
		for neg := 0; neg <= 10-pos; neg++ {
			for _, avg := range []float64{0, 1, 2.5, 3, 3.7, 4.5, 5} {
				tally := models.SentimentTally{Positive: pos, Negative: neg, Neutral: 10 - pos - neg}
				c := Confidence(tally, avg, 10)
				assert.GreaterOrEqual(t, c, 0)
				assert.LessOrEqual(t, c, 100)
			}
		}
	}
}

func TestScore(t *testing.T) {
	reviews := []models.Review{{Rating: 5}, {Rating: 4}}
	tally := models.SentimentTally{Positive: 2}

	res := DefaultThresholds().Score(reviews, tally)
	assert.Equal(t, 4.5, res.AvgRating)
	assert.Equal(t, 90, res.WeightedScore)
	assert.Equal(t, models.StrongBuy, res.Verdict)
	// sentiment 1.0, rating 0.75
	assert.Equal(t, 88, res.Confidence)
}

func TestScoreEmpty(t *testing.T) {
	res := DefaultThresholds().Score(nil, models.SentimentTally{})
	assert.Equal(t, 0, res.WeightedScore)
	assert.Equal(t, 0, res.Confidence)
	assert.Equal(t, models.NotRecommended, res.Verdict)
}
