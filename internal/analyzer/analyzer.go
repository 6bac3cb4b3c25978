// Package analyzer runs the verdict pipeline: resolve the product id,
// fetch the rendered page, extract fields and reviews, then rate, classify
// and score the corpus into a models.VerdictReport.
//
// Everything after the fetch is pure; one Service can serve concurrent
// requests.
package analyzer

import (
	"context"
	"errors"

	"github.com/AnuroopSrivastava/Verdictify/internal/apperr"
	"github.com/AnuroopSrivastava/Verdictify/internal/classifier"
	"github.com/AnuroopSrivastava/Verdictify/internal/config"
	"github.com/AnuroopSrivastava/Verdictify/internal/corpus"
	"github.com/AnuroopSrivastava/Verdictify/internal/identifier"
	"github.com/AnuroopSrivastava/Verdictify/internal/metrics"
	"github.com/AnuroopSrivastava/Verdictify/internal/models"
	"github.com/AnuroopSrivastava/Verdictify/internal/parser"
	"github.com/AnuroopSrivastava/Verdictify/internal/scoring"
	"github.com/AnuroopSrivastava/Verdictify/pkg/logger"
)

// Fetcher is the page fetch collaborator.
type Fetcher interface {
	FetchRenderedPage(ctx context.Context, productURL string) (parser.Page, error)
}

type Service struct {
	fetcher Fetcher
	host    string
	tuning  config.Tuning
	cl      *classifier.Classifier
	log     *logger.Logger
}

func New(f Fetcher, host string, t config.Tuning, l *logger.Logger) *Service {
	return &Service{
		fetcher: f,
		host:    host,
		tuning:  t,
		cl:      classifier.New(t.Sentiment),
		log:     l,
	}
}

// CoerceLimit maps a missing or non-positive limit to the default and
// rejects limits above the maximum.
func (s *Service) CoerceLimit(limit int) (int, error) {
	if limit <= 0 {
		return s.tuning.DefaultLimit, nil
	}
	if limit > s.tuning.MaxLimit {
		return 0, apperr.Validation("limit must be at most %d", s.tuning.MaxLimit)
	}
	return limit, nil
}

// Analyze fetches the product page behind rawURL and builds its report.
func (s *Service) Analyze(ctx context.Context, rawURL string, limit int) (models.VerdictReport, error) {
	report, err := s.analyze(ctx, rawURL, limit)
	metrics.Analyses.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return models.VerdictReport{}, err
	}
	metrics.Verdicts.WithLabelValues(string(report.Verdict)).Inc()
	if n := report.Synthetic(); n > 0 {
		metrics.SyntheticReviews.Add(float64(n))
		s.log.Debugf("product %s: padded corpus with %d synthetic reviews", report.ProductID, n)
	}
	return report, nil
}

func (s *Service) analyze(ctx context.Context, rawURL string, limit int) (models.VerdictReport, error) {
	limit, err := s.CoerceLimit(limit)
	if err != nil {
		return models.VerdictReport{}, err
	}
	id, err := identifier.Resolve(rawURL, s.host)
	if err != nil {
		return models.VerdictReport{}, err
	}
	page, err := s.fetcher.FetchRenderedPage(ctx, identifier.ProductURL(s.host, id))
	if err != nil {
		return models.VerdictReport{}, err
	}
	return s.AnalyzePage(page, id, limit), nil
}

// AnalyzePage runs the pure part of the pipeline over an already fetched page.
func (s *Service) AnalyzePage(page parser.Page, id string, limit int) models.VerdictReport {
	product := parser.ExtractProduct(page, id)
	reviews := corpus.Normalize(parser.HarvestReviews(page, limit), limit, s.tuning.Corpus)
	tally := s.cl.Tally(reviews)
	score := s.tuning.Verdict.Score(reviews, tally)
	pros, cons := s.cl.Summarize(reviews, classifier.MaxExcerpts)
	return Assemble(product, reviews, tally, score, pros, cons)
}

// Assemble packages the pipeline outputs into one report.
func Assemble(p models.ProductRecord, reviews []models.Review, t models.SentimentTally, r scoring.Result, pros, cons []string) models.VerdictReport {
	return models.VerdictReport{
		ProductID:     p.ID,
		ProductName:   p.Name,
		ProductImage:  p.ImageURL,
		Price:         p.Price,
		MRP:           p.MRP,
		Discount:      p.DiscountPct,
		Pros:          pros,
		Cons:          cons,
		Total:         len(reviews),
		Positive:      t.Positive,
		Negative:      t.Negative,
		Neutral:       t.Neutral,
		WeightedScore: r.WeightedScore,
		Verdict:       r.Verdict,
		StarCounts:    t.StarCounts,
		Confidence:    r.Confidence,
		Reviews:       reviews,
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, apperr.ErrValidation):
		return "validation"
	case errors.Is(err, apperr.ErrConfig):
		return "config"
	case errors.Is(err, apperr.ErrUpstream):
		return "upstream"
	default:
		return "error"
	}
}
