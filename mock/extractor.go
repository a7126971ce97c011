package mock

import "github.com/mhaseeb/deptscrape"

var _ deptscrape.RecordExtractor = (*RecordExtractor)(nil)

// RecordExtractor is a mock implementation of deptscrape.RecordExtractor.
type RecordExtractor struct {
	ExtractFn func(sourceURL, html string) (*deptscrape.PageRecord, error)
}

func (e *RecordExtractor) Extract(sourceURL, html string) (*deptscrape.PageRecord, error) {
	return e.ExtractFn(sourceURL, html)
}
