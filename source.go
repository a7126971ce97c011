package deptscrape

import "context"

// URLSource produces the list of page URLs to scrape.
// Implementations hide newline-delimited link files vs sitemap discovery.
type URLSource interface {
	URLs(ctx context.Context) ([]string, error)
}
