package analyzer

import (
	"context"
	"sync"

	"github.com/devbrowser/backend/internal/logging"
)

// AnalyzeBatch probes several URLs concurrently, bounded by
// cfg.MaxConcurrency. The result slice preserves input order and holds one
// entry per input; a canceled context surfaces as degraded per-URL results
// rather than missing ones.
func (a *DefaultAnalyzer) AnalyzeBatch(ctx context.Context, rawURLs []string) []*Analysis {
	results := make([]*Analysis, len(rawURLs))

	maxConcurrency := a.cfg.MaxConcurrency
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrency)

	for i, rawURL := range rawURLs {
		wg.Add(1)

		go func(i int, rawURL string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = a.Analyze(ctx, rawURL)
		}(i, rawURL)
	}

	wg.Wait()

	a.logger.Info("analyzed batch", logging.Field{Key: "count", Value: len(rawURLs)})
	return results
}
