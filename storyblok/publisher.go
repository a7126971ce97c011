package storyblok

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mhaseeb/deptscrape"
)

// Content schema of the target space.
const (
	componentName    = "health_and_service"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldImage       = "image"
)

// DefaultFolderPath is the nested content folder records publish into.
var DefaultFolderPath = []string{"Automation", "health-services"}

// DefaultSlugAttempts bounds the slug candidates tried per record.
const DefaultSlugAttempts = 3

// Ensure Publisher implements deptscrape.EntryPublisher at compile time.
var _ deptscrape.EntryPublisher = (*Publisher)(nil)

// Publisher maps page records to Storyblok stories. Each record becomes one
// story whose slug derives from the title, retried with alternate suffixes
// on collision up to the attempt cap.
type Publisher struct {
	client       *Client
	folderPath   []string
	assetFolder  int64
	publish      bool
	slugAttempts int

	folderOnce sync.Once
	folderID   int64
	folderErr  error
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithFolderPath sets the nested content folder path records publish into.
func WithFolderPath(path []string) PublisherOption {
	return func(p *Publisher) { p.folderPath = path }
}

// WithAssetFolder sets the asset folder id hero images upload into.
func WithAssetFolder(id int64) PublisherOption {
	return func(p *Publisher) { p.assetFolder = id }
}

// WithPublish publishes stories immediately instead of leaving drafts.
func WithPublish(publish bool) PublisherOption {
	return func(p *Publisher) { p.publish = publish }
}

// WithSlugAttempts sets the slug-candidate cap per record.
func WithSlugAttempts(n int) PublisherOption {
	return func(p *Publisher) { p.slugAttempts = n }
}

// NewPublisher creates a Publisher over the given client.
func NewPublisher(client *Client, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		client:       client,
		folderPath:   DefaultFolderPath,
		slugAttempts: DefaultSlugAttempts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PublishRecord creates one story for the record. Records failing
// validation return EINVALID without any remote call. The hero image, when
// present and readable, is uploaded first via the signed-upload protocol; an
// image failure downgrades the story to text-only rather than failing the
// record. Slug collisions consume the next candidate; exhausting all
// candidates returns ECONFLICT.
func (p *Publisher) PublishRecord(ctx context.Context, record *deptscrape.PageRecord, imageDir string) (*deptscrape.Entry, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	folderID, err := p.contentFolder(ctx)
	if err != nil {
		return nil, err
	}

	content := map[string]any{
		"component":      componentName,
		fieldTitle:       record.Title,
		fieldDescription: record.Body.Text(),
	}
	if asset := p.uploadHeroImage(ctx, record, imageDir); asset != nil {
		content[fieldImage] = asset
	}

	var lastErr error
	for _, slug := range deptscrape.SlugCandidates(record.Title, p.slugAttempts) {
		story, err := p.client.CreateStory(ctx, &Story{
			Name:     record.Title,
			Slug:     slug,
			ParentID: folderID,
			Content:  content,
		}, p.publish)
		if err != nil {
			lastErr = err
			if deptscrape.ErrorCode(err) == deptscrape.ECONFLICT {
				continue
			}
			return nil, err
		}
		return &deptscrape.Entry{ID: story.ID, Name: story.Name, Slug: story.Slug}, nil
	}

	return nil, deptscrape.Errorf(deptscrape.ECONFLICT, "all slug candidates taken for %q: %v", record.Title, deptscrape.ErrorMessage(lastErr))
}

// contentFolder resolves the target content folder once per Publisher.
func (p *Publisher) contentFolder(ctx context.Context) (int64, error) {
	p.folderOnce.Do(func() {
		p.folderID, p.folderErr = p.client.EnsureFolderPath(ctx, p.folderPath)
	})
	return p.folderID, p.folderErr
}

// uploadHeroImage uploads the record's hero image and returns the asset
// field value, or nil when the record has no image or the upload fails.
func (p *Publisher) uploadHeroImage(ctx context.Context, record *deptscrape.PageRecord, imageDir string) map[string]any {
	if record.HeroImage == "" {
		return nil
	}

	path := record.HeroImage
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(imageDir, record.HeroImage)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	filename := filepath.Base(path)
	signed, err := p.client.CreateSignedAsset(ctx, filename, p.assetFolder)
	if err != nil {
		return nil
	}
	if err := p.client.UploadAsset(ctx, signed, data, filename, mimeTypeForImage(path)); err != nil {
		return nil
	}

	asset := map[string]any{
		"filename":  p.client.AssetURL(signed),
		"fieldtype": "asset",
	}
	if signed.ID != 0 {
		asset["id"] = signed.ID
	}
	return asset
}

// mimeTypeForImage guesses an image MIME type from the file extension,
// defaulting to JPEG.
func mimeTypeForImage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
