package slog_test

import (
	"context"
	"testing"

	"github.com/mhaseeb/deptscrape"
	"github.com/mhaseeb/deptscrape/mock"
	dsslog "github.com/mhaseeb/deptscrape/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisher_PublishRecord(t *testing.T) {
	t.Parallel()

	record := &deptscrape.PageRecord{SourceURL: "https://x", Title: "Cardiology"}

	t.Run("delegates and logs success", func(t *testing.T) {
		t.Parallel()
		logger, buf := testLogger()
		next := &mock.EntryPublisher{PublishRecordFn: func(ctx context.Context, r *deptscrape.PageRecord, imageDir string) (*deptscrape.Entry, error) {
			return &deptscrape.Entry{ID: 7, Name: r.Title, Slug: "cardiology"}, nil
		}}

		entry, err := dsslog.NewPublisher(next, logger).PublishRecord(context.Background(), record, "out")
		require.NoError(t, err)
		assert.Equal(t, int64(7), entry.ID)
		assert.Contains(t, buf.String(), "published entry")
		assert.Contains(t, buf.String(), "cardiology")
	})

	t.Run("delegates and logs failure with code", func(t *testing.T) {
		t.Parallel()
		logger, buf := testLogger()
		next := &mock.EntryPublisher{PublishRecordFn: func(ctx context.Context, r *deptscrape.PageRecord, imageDir string) (*deptscrape.Entry, error) {
			return nil, deptscrape.Errorf(deptscrape.ECONFLICT, "slug taken")
		}}

		_, err := dsslog.NewPublisher(next, logger).PublishRecord(context.Background(), record, "out")
		require.Error(t, err)
		assert.Contains(t, buf.String(), "publish failed")
		assert.Contains(t, buf.String(), "conflict")
	})
}
