package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/AnuroopSrivastava/Verdictify/internal/apperr"
	"github.com/AnuroopSrivastava/Verdictify/internal/metrics"
	"github.com/AnuroopSrivastava/Verdictify/pkg/logger"
)

// Retry holds the parameters for the retry strategy.
type Retry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      *logger.Logger
}

// Do runs fn with exponential back-off while it fails with a retryable error.
func (r Retry) Do(ctx context.Context, operationName string, fn func(context.Context) error) error {
	attempts := max(r.MaxAttempts, 1)
	delay := r.BaseDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil || !apperr.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		if r.Logger != nil {
			r.Logger.Warnf("[retry] %s failed (attempt %d/%d): %v, retrying in %v",
				operationName, attempt, attempts, lastErr, delay)
		}
		metrics.FetchRetries.Inc()

		select {
		case <-ctx.Done():
			return apperr.Upstream(operationName+" cancelled", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, attempts, lastErr)
}
