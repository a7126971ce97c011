package mock

import (
	"context"

	"github.com/mhaseeb/deptscrape"
)

var _ deptscrape.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of deptscrape.RecordStore.
type RecordStore struct {
	SaveRecordFn  func(ctx context.Context, index int, record *deptscrape.PageRecord) error
	SaveSummaryFn func(ctx context.Context, summary *deptscrape.RunSummary, records []*deptscrape.PageRecord) error
	CommitFn      func() error
	AbortFn       func() error
}

func (s *RecordStore) SaveRecord(ctx context.Context, index int, record *deptscrape.PageRecord) error {
	return s.SaveRecordFn(ctx, index, record)
}

func (s *RecordStore) SaveSummary(ctx context.Context, summary *deptscrape.RunSummary, records []*deptscrape.PageRecord) error {
	return s.SaveSummaryFn(ctx, summary, records)
}

func (s *RecordStore) Commit() error {
	return s.CommitFn()
}

func (s *RecordStore) Abort() error {
	return s.AbortFn()
}
