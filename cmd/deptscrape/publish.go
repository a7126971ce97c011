package main

import (
	"fmt"
	"strconv"

	"github.com/mhaseeb/deptscrape"
	"github.com/mhaseeb/deptscrape/fs"
	dsslog "github.com/mhaseeb/deptscrape/slog"
	"github.com/mhaseeb/deptscrape/storyblok"
)

// Run executes the publish command.
func (c *PublishCmd) Run(deps *Dependencies) error {
	return publishFolder(deps, c.Folder, c.Publish, c.AssetFolderID)
}

// publishFolder pushes every record in the folder to the CMS. Per-record
// failures are logged and counted; only missing credentials or an unreadable
// folder abort the run.
func publishFolder(deps *Dependencies, folder string, publish bool, assetFolderID int64) error {
	publisher, err := newPublisher(deps, publish, assetFolderID)
	if err != nil {
		return err
	}

	records, err := fs.LoadRecords(deps.Ctx, folder)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", deptscrape.ErrorMessage(err))
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no records to publish in %q", folder)
	}

	fmt.Fprintf(deps.Stdout, "Found %d records to publish\n", len(records))

	var published, failed int
	for _, stored := range records {
		entry, err := publisher.PublishRecord(deps.Ctx, stored.Record, folder)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "  skip %q: %s\n", stored.Record.Title, deptscrape.ErrorMessage(err))
			continue
		}
		published++
		fmt.Fprintf(deps.Stdout, "  created %d/%s\n", entry.ID, entry.Slug)
	}

	fmt.Fprintf(deps.Stdout, "Publish complete: %d successful, %d failed\n", published, failed)
	return nil
}

// newPublisher builds the CMS publisher from environment credentials.
// Missing or malformed credentials are configuration errors and abort the
// run.
func newPublisher(deps *Dependencies, publish bool, assetFolderID int64) (deptscrape.EntryPublisher, error) {
	token, _ := deps.LookupEnv("STORYBLOK_TOKEN")
	spaceIDStr, _ := deps.LookupEnv("STORYBLOK_SPACE_ID")
	if token == "" || spaceIDStr == "" {
		fmt.Fprintln(deps.Stderr, "Hint: set STORYBLOK_TOKEN and STORYBLOK_SPACE_ID in the environment or a .env file")
		return nil, fmt.Errorf("missing STORYBLOK_TOKEN or STORYBLOK_SPACE_ID")
	}
	spaceID, err := strconv.ParseInt(spaceIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("STORYBLOK_SPACE_ID must be an integer: %w", err)
	}

	var clientOpts []storyblok.ClientOption
	if base, ok := deps.LookupEnv("STORYBLOK_BASE_URL"); ok && base != "" {
		clientOpts = append(clientOpts, storyblok.WithBaseURL(base))
	}

	client := storyblok.NewClient(token, spaceID, clientOpts...)
	publisher := storyblok.NewPublisher(client,
		storyblok.WithPublish(publish),
		storyblok.WithAssetFolder(assetFolderID),
	)
	return dsslog.NewPublisher(publisher, deps.Logger), nil
}
