package classifier

import (
	"strings"

	"github.com/AnuroopSrivastava/Verdictify/internal/models"
)

const MaxExcerpts = 4

var (
	proWords = []string{"good", "excellent", "nice", "value", "comfortable", "perfect"}
	conWords = []string{"bad", "poor", "waste", "damage", "delay", "cheap"}
)

func mentions(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Summarize collects up to limit review texts per bucket in corpus order.
// A review can land in both buckets.
func (c *Classifier) Summarize(reviews []models.Review, limit int) (pros, cons []string) {
	pros, cons = []string{}, []string{}
	for _, r := range reviews {
		text := strings.ToLower(r.Text)
		if len(pros) < limit && mentions(text, proWords) {
			pros = append(pros, r.Text)
		}
		if len(cons) < limit && mentions(text, conWords) {
			cons = append(cons, r.Text)
		}
	}
	return pros, cons
}
