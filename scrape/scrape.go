// Package scrape orchestrates the scraping phase: it walks the URL list,
// fetches each page with retry under politeness throttling, runs the
// extraction engine, and persists the resulting records and run summary.
package scrape

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/mhaseeb/deptscrape"
	"golang.org/x/sync/errgroup"
)

// Scraper coordinates fetching, extraction, and storage for one run.
// Extraction is pure and reentrant, so Concurrency > 1 fans pages out to a
// bounded worker pool; the display numbering of successful pages always
// follows input order.
type Scraper struct {
	Fetcher     deptscrape.Fetcher
	Extractor   deptscrape.RecordExtractor
	Store       deptscrape.RecordStore
	Throttle    *Throttle
	RetryDelays []time.Duration
	Concurrency int
	OutputDir   string
}

// Result holds the outcome of a scrape run.
type Result struct {
	Summary    *deptscrape.RunSummary
	Records    []*deptscrape.PageRecord
	TypeCounts map[deptscrape.PageType]int
}

// ProgressEvent reports progress during a scrape run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Record    *deptscrape.PageRecord
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	record   *deptscrape.PageRecord
	err      error
}

// Run scrapes all URLs and persists the surviving records. Per-page fetch
// failures are recorded in the summary and never abort the run; only storage
// failures and context cancellation do. On success the store is committed,
// on error pending output is aborted.
func (s *Scraper) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(urls)})
	}

	results, err := s.processAll(ctx, urls, progress)
	if err != nil {
		_ = s.Store.Abort()
		return nil, err
	}

	summary := &deptscrape.RunSummary{
		RunID:      uuid.NewString(),
		Date:       time.Now(),
		TotalPages: len(urls),
		OutputDir:  s.OutputDir,
		FailedURLs: []string{},
	}
	result := &Result{
		Summary:    summary,
		TypeCounts: make(map[deptscrape.PageType]int),
	}

	// Successful pages are numbered 1..N in input order; failures leave no gap.
	index := 0
	for _, pr := range results {
		if pr.err != nil {
			summary.PagesFailed++
			summary.FailedURLs = append(summary.FailedURLs, pr.url)
			continue
		}
		index++
		if err := s.Store.SaveRecord(ctx, index, pr.record); err != nil {
			_ = s.Store.Abort()
			return nil, fmt.Errorf("saving record for %s: %w", pr.url, err)
		}
		summary.PagesScraped++
		result.Records = append(result.Records, pr.record)
		result.TypeCounts[pr.record.PageType]++
	}

	if err := s.Store.SaveSummary(ctx, summary, result.Records); err != nil {
		_ = s.Store.Abort()
		return nil, fmt.Errorf("saving run summary: %w", err)
	}
	if err := s.Store.Commit(); err != nil {
		return nil, fmt.Errorf("committing output: %w", err)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(urls), Total: len(urls)})
	}

	return result, nil
}

// processAll fetches and extracts every URL, sequentially by default or via
// a bounded worker pool when Concurrency > 1. Results come back in input
// order either way.
func (s *Scraper) processAll(ctx context.Context, urls []string, progress ProgressFunc) ([]pageResult, error) {
	results := make([]pageResult, len(urls))

	if s.Concurrency <= 1 {
		for i, url := range urls {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = s.processURL(ctx, i, url)
			notify(progress, &results[i], i+1, len(urls))
		}
		return results, nil
	}

	var completed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for i, url := range urls {
		g.Go(func() error {
			results[i] = s.processURL(gctx, i, url)
			notify(progress, &results[i], int(completed.Add(1)), len(urls))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// processURL fetches and extracts a single URL.
func (s *Scraper) processURL(ctx context.Context, position int, url string) pageResult {
	result := pageResult{position: position, url: url}

	if s.Throttle != nil {
		if err := s.Throttle.Wait(ctx); err != nil {
			result.err = err
			return result
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, url, s.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	record, err := s.Extractor.Extract(url, html)
	if err != nil {
		result.err = err
		return result
	}

	record.ContentHash = computeHash(record.Body.Text())
	record.ScrapedAt = time.Now().UTC()
	result.record = record

	return result
}

func notify(progress ProgressFunc, pr *pageResult, completed, total int) {
	if progress == nil {
		return
	}
	event := ProgressEvent{
		Completed: completed,
		Total:     total,
		URL:       pr.url,
	}
	if pr.err != nil {
		event.Type = ProgressFailed
		event.Error = pr.err
	} else {
		event.Type = ProgressCompleted
		event.Record = pr.record
	}
	progress(event)
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
