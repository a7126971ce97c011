package mock

import (
	"context"

	"github.com/mhaseeb/deptscrape"
)

var _ deptscrape.EntryPublisher = (*EntryPublisher)(nil)

// EntryPublisher is a mock implementation of deptscrape.EntryPublisher.
type EntryPublisher struct {
	PublishRecordFn func(ctx context.Context, record *deptscrape.PageRecord, imageDir string) (*deptscrape.Entry, error)
}

func (p *EntryPublisher) PublishRecord(ctx context.Context, record *deptscrape.PageRecord, imageDir string) (*deptscrape.Entry, error) {
	return p.PublishRecordFn(ctx, record, imageDir)
}
