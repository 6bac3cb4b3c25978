package identifier

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/AnuroopSrivastava/Verdictify/internal/apperr"
)

var (
	numericRe = regexp.MustCompile(`^\d+$`)
	schemeRe  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
)

// Resolve returns the product id carried by a product page URL on host,
// i.e. the first all-digit path segment.
func Resolve(rawURL, host string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", apperr.Validation("Invalid Myntra URL")
	}
	if !schemeRe.MatchString(rawURL) {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || !onHost(u.Hostname(), host) {
		return "", apperr.Validation("Invalid Myntra URL")
	}

	for _, seg := range strings.Split(u.Path, "/") {
		if numericRe.MatchString(seg) {
			return seg, nil
		}
	}
	return "", apperr.Validation("Product ID not found in URL")
}

// ProductURL is the canonical page the scraping proxy is asked to render.
func ProductURL(host, id string) string {
	return "https://www." + strings.TrimPrefix(host, "www.") + "/" + id
}

func onHost(h, host string) bool {
	h = strings.ToLower(h)
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	return h == host || strings.HasSuffix(h, "."+host)
}
