// Package newsobs wraps a NewsSource with logging and tracing.
package newsobs

import (
	"context"

	"sp500-advisor/internal/interfaces"
	"sp500-advisor/internal/logger"
	"sp500-advisor/internal/trace"
)

type observableNewsSource struct {
	src interfaces.NewsSource
}

var _ interfaces.NewsSource = (*observableNewsSource)(nil)

// Wrap adds observability middleware around a news source.
func Wrap(src interfaces.NewsSource) interfaces.NewsSource {
	return &observableNewsSource{src: src}
}

func (on *observableNewsSource) Headlines(ctx context.Context, limit int) ([]string, error) {
	ctx, span := trace.StartSpan(ctx, "news.Headlines")
	defer span.End()

	headlines, err := on.src.Headlines(ctx, limit)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Headline fetch failed", err)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "Headlines fetched", "count", len(headlines))
	return headlines, nil
}
