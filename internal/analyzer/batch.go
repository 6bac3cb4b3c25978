package analyzer

import (
	"context"
	"errors"

	"github.com/AnuroopSrivastava/Verdictify/internal/apperr"
	"github.com/AnuroopSrivastava/Verdictify/internal/ioformats"
	"github.com/AnuroopSrivastava/Verdictify/internal/models"
)

// ErrBatchDeadline marks jobs never started because the batch ran out of time.
var ErrBatchDeadline = errors.New("batch deadline exceeded before this product was analyzed")

type BatchResult struct {
	URL    string                `json:"url"`
	Result *models.VerdictReport `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// AnalyzeBatch runs jobs with at most concurrency analyses in flight.
// Results keep the order of jobs; a failed job never stops the others.
// Once ctx is done the remaining jobs are reported without being started.
func (s *Service) AnalyzeBatch(ctx context.Context, jobs []ioformats.Job, concurrency int) []BatchResult {
	results := make([]BatchResult, len(jobs))

	// bounded concurrency
	sem := make(chan struct{}, max(concurrency, 1))
	done := make(chan int, len(jobs))

	for i, job := range jobs {
		sem <- struct{}{} // acquire
		if ctx.Err() != nil {
			<-sem
			results[i] = BatchResult{URL: job.URL, Error: ErrBatchDeadline.Error()}
			done <- i
			continue
		}
		go func() {
			defer func() { <-sem; done <- i }()
			rep, err := s.Analyze(ctx, job.URL, job.Limit)
			if err != nil {
				s.log.Warnf("batch %s: %v", job.URL, err)
				results[i] = BatchResult{URL: job.URL, Error: apperr.Message(err)}
				return
			}
			results[i] = BatchResult{URL: job.URL, Result: &rep}
		}()
	}
	// wait
	for range jobs {
		<-done
	}
	return results
}
