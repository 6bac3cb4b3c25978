package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Analyses by outcome: ok, validation, config, upstream, error
	Analyses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "verdictify_analyses_total",
		Help: "Total number of analyze requests by outcome",
	}, []string{"outcome"})

	// Verdicts handed out, by label
	Verdicts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "verdictify_verdicts_total",
		Help: "Total number of verdicts by label",
	}, []string{"verdict"})

	// Latency of one scraping proxy attempt
	FetchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "verdictify_fetch_latency_seconds",
		Help:    "Latency of scraping proxy page fetches",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	})

	FetchRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "verdictify_fetch_retries_total",
		Help: "Total number of retried scraping proxy fetches",
	})

	SyntheticReviews = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "verdictify_synthetic_reviews_total",
		Help: "Total number of padded reviews added to short corpora",
	})
)

func Init() {
	prometheus.MustRegister(
		Analyses,
		Verdicts,
		FetchLatency,
		FetchRetries,
		SyntheticReviews,
	)
}
