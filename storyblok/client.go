// Package storyblok implements the remote publish boundary against the
// Storyblok Management API: folder resolution, the two-step signed asset
// upload, and story creation with retry.
package storyblok

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"github.com/mhaseeb/deptscrape"
)

// DefaultBaseURL is the Storyblok Management API endpoint.
const DefaultBaseURL = "https://mapi.storyblok.com/v1"

// DefaultAssetHost serves uploaded assets; permanent asset URLs are derived
// from the signed-upload key against this host.
const DefaultAssetHost = "https://a.storyblok.com"

// DefaultRetries is the attempt cap for API calls.
const DefaultRetries = 4

// DefaultBackoff is the base delay between retries; the actual delay grows
// linearly with the attempt number.
const DefaultBackoff = 1200 * time.Millisecond

// Story is a Storyblok story or folder.
type Story struct {
	ID       int64          `json:"id,omitempty"`
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	IsFolder bool           `json:"is_folder,omitempty"`
	ParentID int64          `json:"parent_id"`
	Content  map[string]any `json:"content,omitempty"`
}

// SignedUpload is the destination issued by the signed-upload request.
// The client posts the file bytes directly to PostURL with Fields as form
// values; Fields["key"] becomes the permanent asset path.
type SignedUpload struct {
	ID      int64             `json:"id"`
	PostURL string            `json:"post_url"`
	Fields  map[string]string `json:"fields"`
}

// Client is a Storyblok Management API client with capped linear-backoff
// retry on transient failures.
type Client struct {
	token      string
	spaceID    int64
	baseURL    string
	assetHost  string
	httpClient *http.Client
	retries    int
	backoff    time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for API calls and uploads.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.httpClient = c }
}

// WithBaseURL overrides the Management API endpoint (used in tests).
func WithBaseURL(u string) ClientOption {
	return func(cl *Client) { cl.baseURL = u }
}

// WithAssetHost overrides the asset host (used in tests).
func WithAssetHost(u string) ClientOption {
	return func(cl *Client) { cl.assetHost = u }
}

// WithRetries sets the attempt cap for API calls.
func WithRetries(n int) ClientOption {
	return func(cl *Client) { cl.retries = n }
}

// WithBackoff sets the base retry delay.
func WithBackoff(d time.Duration) ClientOption {
	return func(cl *Client) { cl.backoff = d }
}

// NewClient creates a Management API client for the given space.
func NewClient(token string, spaceID int64, opts ...ClientOption) *Client {
	c := &Client{
		token:     token,
		spaceID:   spaceID,
		baseURL:   DefaultBaseURL,
		assetHost: DefaultAssetHost,
		retries:   DefaultRetries,
		backoff:   DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	return c
}

// request performs one API call with retry. Transient failures (network
// errors and 5xx responses) are retried up to the attempt cap with linear
// backoff; 422 surfaces immediately as ECONFLICT so callers can try an
// alternate slug; other 4xx responses surface immediately as EINVALID.
func (c *Client) request(ctx context.Context, method, path string, params url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt-1)):
			}
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", c.token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = deptscrape.Errorf(deptscrape.EUNAVAILABLE, "%s %s: %v", method, path, err)
			continue
		}

		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnprocessableEntity:
			return deptscrape.Errorf(deptscrape.ECONFLICT, "%s %s: %s", method, path, respBody)
		case resp.StatusCode >= 500:
			lastErr = deptscrape.Errorf(deptscrape.EUNAVAILABLE, "%s %s: HTTP %d", method, path, resp.StatusCode)
			continue
		case resp.StatusCode >= 400:
			return deptscrape.Errorf(deptscrape.EINVALID, "%s %s: HTTP %d: %s", method, path, resp.StatusCode, respBody)
		}

		if readErr != nil {
			lastErr = deptscrape.Errorf(deptscrape.EUNAVAILABLE, "%s %s: reading response: %v", method, path, readErr)
			continue
		}
		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("decoding %s %s response: %w", method, path, err)
			}
		}
		return nil
	}

	return lastErr
}

func (c *Client) spacePath(suffix string) string {
	return fmt.Sprintf("/spaces/%d%s", c.spaceID, suffix)
}

// CreateStory creates a story (or folder) and returns the created resource.
// Slug collisions surface as ECONFLICT.
func (c *Client) CreateStory(ctx context.Context, story *Story, publish bool) (*Story, error) {
	var params url.Values
	if publish {
		params = url.Values{"publish": []string{"1"}}
	}
	var resp struct {
		Story Story `json:"story"`
	}
	in := struct {
		Story *Story `json:"story"`
	}{Story: story}
	if err := c.request(ctx, http.MethodPost, c.spacePath("/stories"), params, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Story, nil
}

// ListFolders returns every folder in the space, paging through the API.
func (c *Client) ListFolders(ctx context.Context) ([]*Story, error) {
	var out []*Story
	for page := 1; ; page++ {
		params := url.Values{
			"folder_only": []string{"1"},
			"per_page":    []string{"100"},
			"page":        []string{strconv.Itoa(page)},
		}
		var resp struct {
			Stories []*Story `json:"stories"`
			Total   int      `json:"total"`
		}
		if err := c.request(ctx, http.MethodGet, c.spacePath("/stories"), params, nil, &resp); err != nil {
			return nil, err
		}
		out = append(out, resp.Stories...)
		if len(resp.Stories) == 0 || page*100 >= resp.Total {
			break
		}
	}
	return out, nil
}

// EnsureFolderPath walks the nested folder path, creating missing segments,
// and returns the id of the innermost folder. An empty path returns 0 (the
// space root).
func (c *Client) EnsureFolderPath(ctx context.Context, path []string) (int64, error) {
	if len(path) == 0 {
		return 0, nil
	}

	folders, err := c.ListFolders(ctx)
	if err != nil {
		return 0, err
	}

	var parentID int64
	for _, name := range path {
		var found *Story
		for _, f := range folders {
			if f.IsFolder && f.Name == name && f.ParentID == parentID {
				found = f
				break
			}
		}
		if found != nil {
			parentID = found.ID
			continue
		}

		created, err := c.CreateStory(ctx, &Story{
			Name:     name,
			Slug:     deptscrape.Slugify(name),
			IsFolder: true,
			ParentID: parentID,
			Content:  map[string]any{"component": "folder"},
		}, false)
		if err != nil {
			return 0, fmt.Errorf("creating folder %q: %w", name, err)
		}
		parentID = created.ID
		folders = append(folders, created)
	}

	return parentID, nil
}

// CreateSignedAsset requests a signed upload destination for a new asset.
func (c *Client) CreateSignedAsset(ctx context.Context, filename string, assetFolderID int64) (*SignedUpload, error) {
	body := map[string]any{"filename": filename}
	if assetFolderID != 0 {
		body["asset_folder_id"] = assetFolderID
	}
	var signed SignedUpload
	if err := c.request(ctx, http.MethodPost, c.spacePath("/assets"), nil, body, &signed); err != nil {
		return nil, err
	}
	if signed.PostURL == "" || len(signed.Fields) == 0 {
		return nil, deptscrape.Errorf(deptscrape.EINTERNAL, "signed upload payload missing fields or post_url")
	}
	return &signed, nil
}

// UploadAsset posts the file bytes to the signed destination as a multipart
// form, with the signed fields ahead of the file part.
func (c *Client) UploadAsset(ctx context.Context, signed *SignedUpload, data []byte, filename, mimeType string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range signed.Fields {
		if err := w.WriteField(key, value); err != nil {
			return err
		}
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, signed.PostURL, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return deptscrape.Errorf(deptscrape.EUNAVAILABLE, "uploading asset %s: %v", filename, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return deptscrape.Errorf(deptscrape.EUNAVAILABLE, "uploading asset %s: HTTP %d", filename, resp.StatusCode)
	}
	return nil
}

// AssetURL derives the permanent asset URL from a completed signed upload.
func (c *Client) AssetURL(signed *SignedUpload) string {
	return c.assetHost + "/" + signed.Fields["key"]
}
