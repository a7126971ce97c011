package deptscrape

import "context"

// Entry is a content entry created in the remote CMS.
type Entry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// EntryPublisher creates one CMS entry per record. Implementations are
// responsible for slug-collision retry, optional hero-image upload, and
// mapping the record to the CMS content schema.
type EntryPublisher interface {
	// PublishRecord creates a content entry for the record. imageDir is the
	// directory relative hero-image paths resolve against. Returns EINVALID
	// without any remote call when the record fails validation, ECONFLICT
	// when every slug candidate is taken, and EUNAVAILABLE when the remote
	// API stays unreachable past the retry cap.
	PublishRecord(ctx context.Context, record *PageRecord, imageDir string) (*Entry, error)
}
