package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds shared services and configuration for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// LookupEnv resolves credentials; defaults to os.LookupEnv and is
	// replaced in tests.
	LookupEnv func(key string) (string, bool)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape department pages into a records directory"`
	Publish PublishCmd `cmd:"" help:"Publish a records directory to the CMS"`
	Run     RunCmd     `cmd:"" help:"Scrape and publish in one pass"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Links       string        `short:"l" default:"links.txt" help:"Newline-delimited URL list file"`
	Sitemap     string        `help:"Discover URLs from this base URL's sitemap instead of the links file"`
	Out         string        `short:"o" help:"Output directory (default: output_<timestamp>)"`
	Delay       time.Duration `default:"2s" help:"Politeness delay between fetches"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent fetch limit"`
}

// PublishCmd is the "publish" subcommand.
type PublishCmd struct {
	Folder        string `arg:"" help:"Records directory from a scrape run"`
	Publish       bool   `help:"Publish entries immediately (default: draft)"`
	AssetFolderID int64  `help:"Asset folder ID for hero images"`
}

// RunCmd is the "run" subcommand: scrape followed by publish.
type RunCmd struct {
	ScrapeCmd
	Publish       bool  `help:"Publish entries immediately (default: draft)"`
	AssetFolderID int64 `help:"Asset folder ID for hero images"`
}
