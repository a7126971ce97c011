package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mhaseeb/deptscrape"
)

// Ensure Publisher implements deptscrape.EntryPublisher at compile time.
var _ deptscrape.EntryPublisher = (*Publisher)(nil)

// Publisher wraps a deptscrape.EntryPublisher with logging of each publish
// attempt, keyed by record title so failed records can be retried manually.
type Publisher struct {
	next   deptscrape.EntryPublisher
	logger *slog.Logger
}

// NewPublisher creates a logging Publisher decorator.
func NewPublisher(next deptscrape.EntryPublisher, logger *slog.Logger) *Publisher {
	return &Publisher{next: next, logger: logger}
}

// PublishRecord delegates to the wrapped publisher and logs the outcome.
func (p *Publisher) PublishRecord(ctx context.Context, record *deptscrape.PageRecord, imageDir string) (*deptscrape.Entry, error) {
	begin := time.Now()
	entry, err := p.next.PublishRecord(ctx, record, imageDir)
	if err != nil {
		p.logger.Error("publish failed",
			"title", record.Title,
			"url", record.SourceURL,
			"code", deptscrape.ErrorCode(err),
			"error", deptscrape.ErrorMessage(err),
		)
		return nil, err
	}
	p.logger.Info("published entry",
		"title", record.Title,
		"entry_id", entry.ID,
		"slug", entry.Slug,
		"duration", time.Since(begin),
	)
	return entry, nil
}
