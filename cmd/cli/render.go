package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/AnuroopSrivastava/Verdictify/internal/models"
)

func render(w io.Writer, r models.VerdictReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(r.ProductName)
	t.AppendRows([]table.Row{
		{"Image", r.ProductImage},
		{"Price", rupees(r.Price)},
		{"MRP", rupees(r.MRP)},
		{"Discount", percent(r.Discount)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Verdict", r.Verdict.Label()},
		{"Score", fmt.Sprintf("%d/100", r.WeightedScore)},
		{"Confidence", fmt.Sprintf("%d%%", r.Confidence)},
		{"Reviews", reviewCount(r)},
		{"Sentiment", fmt.Sprintf("+%d / =%d / -%d", r.Positive, r.Neutral, r.Negative)},
		{"Stars", stars(r.StarCounts)},
	})
	t.AppendSeparator()
	for _, p := range r.Pros {
		t.AppendRow(table.Row{"Pro", p})
	}
	for _, c := range r.Cons {
		t.AppendRow(table.Row{"Con", c})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

func rupees(v *int) string {
	if v == nil {
		return "-"
	}
	return "Rs. " + strconv.Itoa(*v)
}

func percent(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v) + "%"
}

func reviewCount(r models.VerdictReport) string {
	if n := r.Synthetic(); n > 0 {
		return fmt.Sprintf("%d (%d padded)", r.Total, n)
	}
	return strconv.Itoa(r.Total)
}

func stars(counts map[int]int) string {
	parts := make([]string, 0, 5)
	for s := 5; s >= 1; s-- {
		parts = append(parts, fmt.Sprintf("%d★ %d", s, counts[s]))
	}
	return strings.Join(parts, "  ")
}
