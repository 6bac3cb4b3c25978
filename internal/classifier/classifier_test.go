package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AnuroopSrivastava/Verdictify/internal/models"
)

func rv(text string, rating float64) models.Review {
	return models.Review{Text: text, Rating: rating}
}

func TestSentimentBoundaries(t *testing.T) {
	cl := New(DefaultCutoffs())
	assert.Equal(t, Positive, cl.Sentiment(3.81))
	assert.Equal(t, Neutral, cl.Sentiment(3.8))
	assert.Equal(t, Neutral, cl.Sentiment(2.5))
	assert.Equal(t, Negative, cl.Sentiment(2.49))
	assert.Equal(t, Negative, cl.Sentiment(1))
}

func TestTally(t *testing.T) {
	cl := New(DefaultCutoffs())
	reviews := []models.Review{rv("a", 5), rv("b", 4), rv("c", 3), rv("d", 2.5), rv("e", 1), rv("f", 0.2)}
	tally := cl.Tally(reviews)

	assert.Equal(t, 2, tally.Positive)
	assert.Equal(t, 2, tally.Neutral)
	assert.Equal(t, 2, tally.Negative)
	assert.Equal(t, map[int]int{1: 2, 2: 0, 3: 2, 4: 1, 5: 1}, tally.StarCounts)
	assert.Equal(t, len(reviews), tally.Positive+tally.Neutral+tally.Negative)
}

func TestTallyEmptyHasAllBuckets(t *testing.T) {
	tally := New(DefaultCutoffs()).Tally(nil)
	assert.Len(t, tally.StarCounts, 5)
}

func TestStarClamp(t *testing.T) {
	assert.Equal(t, 1, Star(0))
	assert.Equal(t, 5, Star(7))
	assert.Equal(t, 4, Star(4.4))
	assert.Equal(t, 5, Star(4.5))
}

func TestSummarize(t *testing.T) {
	cl := New(DefaultCutoffs())
	reviews := []models.Review{
		rv("Excellent fabric", 5),
		rv("Delivery delay, but GOOD product", 4),
		rv("arrived", 4),
		rv("Poor stitching", 4),
	}
	pros, cons := cl.Summarize(reviews, MaxExcerpts)
	assert.Equal(t, []string{"Excellent fabric", "Delivery delay, but GOOD product"}, pros)
	assert.Equal(t, []string{"Delivery delay, but GOOD product", "Poor stitching"}, cons)
}

func TestSummarizeCap(t *testing.T) {
	cl := New(DefaultCutoffs())
	var reviews []models.Review
	for i := 0; i < 10; i++ {
		reviews = append(reviews, rv("good value", 5))
	}
	pros, cons := cl.Summarize(reviews, MaxExcerpts)
	assert.Len(t, pros, 4)
	assert.Empty(t, cons)
	assert.NotNil(t, cons)
}
