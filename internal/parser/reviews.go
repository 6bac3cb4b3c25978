package parser

import (
	"regexp"
	"strings"
)

var (
	reviewTextRe = regexp.MustCompile(`"reviewText":"((?:[^"\\]|\\.)*)"`)
	unescape     = strings.NewReplacer(`\"`, `"`, `\n`, " ")
)

// HarvestReviews returns up to limit review texts in page order.
func HarvestReviews(p Page, limit int) []string {
	if limit <= 0 {
		return nil
	}
	matches := reviewTextRe.FindAllStringSubmatch(p.Raw, limit)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, unescape.Replace(m[1]))
	}
	return out
}
