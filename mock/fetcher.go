package mock

import (
	"context"

	"github.com/mhaseeb/deptscrape"
)

var _ deptscrape.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of deptscrape.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}
