package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/AnuroopSrivastava/Verdictify/internal/models"
)

const (
	DefaultName      = "Myntra Product"
	PlaceholderImage = "/images/placeholder.png"

	titleSuffix   = "| Myntra"
	imageSize     = "size=1080"
	minImageChars = 10
)

// strategy recovers one field from a page; ok is false when its marker is absent.
type strategy func(Page) (string, bool)

// firstMatch runs strategies in order and stops at the first hit.
func firstMatch(p Page, chain []strategy) (string, bool) {
	for _, s := range chain {
		if v, ok := s(p); ok {
			return v, true
		}
	}
	return "", false
}

func submatch(re *regexp.Regexp) strategy {
	return func(p Page) (string, bool) {
		m := re.FindStringSubmatch(p.Raw)
		if m == nil {
			return "", false
		}
		return m[len(m)-1], true
	}
}

var (
	nameRe = regexp.MustCompile(`"name":"((?:[^"\\]|\\.)+)"`)

	imageURLRe   = regexp.MustCompile(`"imageUrl":"([^"]+)"`)
	cdnRe        = regexp.MustCompile(`(https://assets\.myntra\.com[^"]+)`)
	alternateRe  = regexp.MustCompile(`"alternateImages":\["([^"]+)"`)
	albumsRe     = regexp.MustCompile(`"albums":\[\{"image":"([^"]+)"`)
	styleImageRe = regexp.MustCompile(`"styleImages":\{"default":\{"imageURL":"([^"]+)"`)

	sizeRe = regexp.MustCompile(`size=\d+`)

	priceRe = regexp.MustCompile(`"price":(\d+)`)
	mrpRe   = regexp.MustCompile(`"mrp":(\d+)`)
)

var nameChain = []strategy{
	func(p Page) (string, bool) {
		v, ok := submatch(nameRe)(p)
		return unescape.Replace(v), ok
	},
	func(p Page) (string, bool) {
		t := strings.TrimSpace(strings.Replace(p.title(), titleSuffix, "", 1))
		return t, t != ""
	},
}

var imageChain = []strategy{
	submatch(imageURLRe),
	submatch(cdnRe),
	func(p Page) (string, bool) {
		c := p.metaProperty("og:image")
		return c, c != ""
	},
	submatch(alternateRe),
	submatch(albumsRe),
	submatch(styleImageRe),
}

var slashes = strings.NewReplacer(`\u002F`, "/", `\/`, "/")

func ExtractName(p Page) string {
	if v, ok := firstMatch(p, nameChain); ok {
		return v
	}
	return DefaultName
}

// ExtractImage always yields an image reference, falling back to the placeholder.
func ExtractImage(p Page) string {
	img, _ := firstMatch(p, imageChain)
	return normalizeImage(img)
}

func normalizeImage(img string) string {
	img = slashes.Replace(img)
	if strings.HasPrefix(img, "//") {
		img = "https:" + img
	}
	if !strings.HasPrefix(img, "http") {
		img = "https://" + img
	}
	img = sizeRe.ReplaceAllString(img, imageSize)
	if len(img) < minImageChars {
		return PlaceholderImage
	}
	return img
}

func extractInt(p Page, re *regexp.Regexp) *int {
	v, ok := submatch(re)(p)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// Discount is the rounded percentage off mrp, clamped to [0,100].
// It is nil unless both prices are known and mrp is positive.
func Discount(price, mrp *int) *int {
	if price == nil || mrp == nil || *mrp <= 0 {
		return nil
	}
	d := int(math.Round(float64(*mrp-*price) / float64(*mrp) * 100))
	d = min(max(d, 0), 100)
	return &d
}

func ExtractProduct(p Page, id string) models.ProductRecord {
	price := extractInt(p, priceRe)
	mrp := extractInt(p, mrpRe)
	return models.ProductRecord{
		ID:          id,
		Name:        ExtractName(p),
		ImageURL:    ExtractImage(p),
		Price:       price,
		MRP:         mrp,
		DiscountPct: Discount(price, mrp),
	}
}
