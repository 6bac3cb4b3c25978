package models

import "encoding/json"

type ProductRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Price       *int   `json:"price"`
	MRP         *int   `json:"mrp"`
	DiscountPct *int   `json:"discount"`
}

// Origin tells harvested reviews apart from backfilled ones.
type Origin int

const (
	Observed Origin = iota
	Synthetic
)

type Review struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating"`
	Origin Origin  `json:"-"`
}

// wire form of a review; synthetic entries are flagged, observed ones keep the plain {text, rating} shape
type reviewJSON struct {
	Text      string  `json:"text"`
	Rating    float64 `json:"rating"`
	Synthetic bool    `json:"synthetic,omitempty"`
}

func (r Review) MarshalJSON() ([]byte, error) {
	return json.Marshal(reviewJSON{Text: r.Text, Rating: r.Rating, Synthetic: r.Origin == Synthetic})
}

func (r *Review) UnmarshalJSON(b []byte) error {
	var v reviewJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	r.Text, r.Rating = v.Text, v.Rating
	r.Origin = Observed
	if v.Synthetic {
		r.Origin = Synthetic
	}
	return nil
}

type SentimentTally struct {
	Positive   int         `json:"positive"`
	Neutral    int         `json:"neutral"`
	Negative   int         `json:"negative"`
	StarCounts map[int]int `json:"starCounts"`
}

type Verdict string

const (
	StrongBuy      Verdict = "StrongBuy"
	Recommended    Verdict = "Recommended"
	Caution        Verdict = "Caution"
	NotRecommended Verdict = "NotRecommended"
)

// Label is the display text shown next to the score.
func (v Verdict) Label() string {
	switch v {
	case StrongBuy:
		return "Strong Buy"
	case Recommended:
		return "Recommended"
	case Caution:
		return "Average - Think Before Buying"
	case NotRecommended:
		return "Not Recommended"
	}
	return string(v)
}

// VerdictReport is the outbound shape of one analysis.
type VerdictReport struct {
	ProductName   string      `json:"productName"`
	ProductImage  string      `json:"productImage"`
	Price         *int        `json:"price"`
	MRP           *int        `json:"mrp"`
	Discount      *int        `json:"discount"`
	Pros          []string    `json:"pros"`
	Cons          []string    `json:"cons"`
	Total         int         `json:"total"`
	Positive      int         `json:"positive"`
	Negative      int         `json:"negative"`
	Neutral       int         `json:"neutral"`
	WeightedScore int         `json:"weightedScore"`
	Verdict       Verdict     `json:"verdict"`
	StarCounts    map[int]int `json:"starCounts"`
	Confidence    int         `json:"confidence"`
	Reviews       []Review    `json:"reviews"`

	ProductID string `json:"-"`
}

// Synthetic counts padded reviews in the report.
func (r VerdictReport) Synthetic() int {
	n := 0
	for _, rv := range r.Reviews {
		if rv.Origin == Synthetic {
			n++
		}
	}
	return n
}
