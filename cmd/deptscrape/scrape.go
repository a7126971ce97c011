package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/mhaseeb/deptscrape"
	"github.com/mhaseeb/deptscrape/fs"
	"github.com/mhaseeb/deptscrape/goquery"
	dshttp "github.com/mhaseeb/deptscrape/http"
	"github.com/mhaseeb/deptscrape/scrape"
	dsslog "github.com/mhaseeb/deptscrape/slog"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	_, err := c.scrape(deps)
	return err
}

// scrape performs the scrape phase and returns the committed output
// directory.
func (c *ScrapeCmd) scrape(deps *Dependencies) (string, error) {
	var source deptscrape.URLSource
	if c.Sitemap != "" {
		source = dshttp.NewSitemapSource(c.Sitemap, nil)
	} else {
		source = fs.NewFileSource(c.Links)
	}

	urls, err := source.URLs(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", deptscrape.ErrorMessage(err))
		return "", err
	}
	if len(urls) == 0 {
		return "", fmt.Errorf("no URLs to scrape")
	}

	out := c.Out
	if out == "" {
		out = "output_" + time.Now().Format("2006-01-02_150405")
	}
	store := fs.NewStore(filepath.Dir(out), filepath.Base(out))

	scraper := &scrape.Scraper{
		Fetcher:     dsslog.NewFetcher(dshttp.NewFetcher(), deps.Logger),
		Extractor:   goquery.NewExtractor(deptscrape.DefaultConfig()),
		Store:       store,
		Throttle:    scrape.NewThrottle(c.Delay),
		Concurrency: c.Concurrency,
		OutputDir:   out,
	}

	fmt.Fprintf(deps.Stdout, "Found %d URLs to scrape\n", len(urls))

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %s (faculty %d, appointment %v)\n",
				event.Completed, event.Total, event.Record.Title, event.Record.PageType,
				event.Record.FacultyLinks.Count, event.Record.Appointment.Present)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := scraper.Run(deps.Ctx, urls, progress)
	if err != nil {
		return "", err
	}

	summary := result.Summary
	fmt.Fprintf(deps.Stdout, "Scraped %d/%d pages (%d failed) into %s\n",
		summary.PagesScraped, summary.TotalPages, summary.PagesFailed, out)

	printTypeDistribution(deps, result.TypeCounts)

	return out, nil
}

// printTypeDistribution prints per-archetype page counts in stable order.
func printTypeDistribution(deps *Dependencies, counts map[deptscrape.PageType]int) {
	if len(counts) == 0 {
		return
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)

	fmt.Fprintln(deps.Stdout, "Page type distribution:")
	for _, t := range types {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", t, counts[deptscrape.PageType(t)])
	}
}
