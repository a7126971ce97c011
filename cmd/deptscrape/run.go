package main

// Run executes the run command: scrape, then publish the committed output.
func (c *RunCmd) Run(deps *Dependencies) error {
	// Resolve credentials before scraping so a misconfigured environment
	// fails fast instead of after minutes of fetching.
	if _, err := newPublisher(deps, c.Publish, c.AssetFolderID); err != nil {
		return err
	}

	folder, err := c.scrape(deps)
	if err != nil {
		return err
	}

	return publishFolder(deps, folder, c.Publish, c.AssetFolderID)
}
