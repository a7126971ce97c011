package deptscrape

import (
	"context"
	"time"
)

// RunSummary aggregates the outcome of one scrape run. It is persisted
// alongside the per-page records.
type RunSummary struct {
	RunID        string    `json:"run_id"`
	Date         time.Time `json:"date"`
	TotalPages   int       `json:"total_pages"`
	PagesScraped int       `json:"pages_scraped"`
	PagesFailed  int       `json:"pages_failed"`
	FailedURLs   []string  `json:"failed_urls"`
	OutputDir    string    `json:"output_folder"`
}

// RecordStore persists page records with atomic update semantics.
// SaveRecord writes to a temporary location; Commit makes the run's output
// permanent; Abort discards pending output.
type RecordStore interface {
	// SaveRecord persists one record under the given display index.
	SaveRecord(ctx context.Context, index int, record *PageRecord) error

	// SaveSummary persists the run summary and the tabular per-page summary.
	SaveSummary(ctx context.Context, summary *RunSummary, records []*PageRecord) error

	Commit() error
	Abort() error
}

// RecordReader loads previously persisted records for publishing, possibly
// in a different process than the one that scraped them.
type RecordReader interface {
	// LoadRecords returns all records in the store in display-index order,
	// along with the absolute paths they were read from.
	LoadRecords(ctx context.Context) ([]*StoredRecord, error)
}

// StoredRecord pairs a loaded record with its on-disk location, which the
// publisher uses to resolve relative hero-image paths.
type StoredRecord struct {
	Path   string
	Record *PageRecord
}
