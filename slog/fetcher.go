// Package slog provides logging decorators over the domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mhaseeb/deptscrape"
)

// Ensure Fetcher implements deptscrape.Fetcher at compile time.
var _ deptscrape.Fetcher = (*Fetcher)(nil)

// Fetcher wraps a deptscrape.Fetcher with debug logging of each fetch.
type Fetcher struct {
	next   deptscrape.Fetcher
	logger *slog.Logger
}

// NewFetcher creates a logging Fetcher decorator.
func NewFetcher(next deptscrape.Fetcher, logger *slog.Logger) *Fetcher {
	return &Fetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Warn("fetch failed",
			"url", url,
			"duration", time.Since(begin),
			"error", err,
		)
		return "", err
	}
	f.logger.Info("fetched page",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}
