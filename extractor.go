package deptscrape

// RecordExtractor turns a fetched HTML document into a canonical PageRecord.
// Implementations are pure with respect to their inputs: the same document
// always yields the same record, and extraction never fails on a well-formed
// document (every field has a documented empty fallback).
type RecordExtractor interface {
	Extract(sourceURL, html string) (*PageRecord, error)
}
