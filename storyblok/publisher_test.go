package storyblok_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mhaseeb/deptscrape"
	"github.com/mhaseeb/deptscrape/storyblok"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishableRecord() *deptscrape.PageRecord {
	return &deptscrape.PageRecord{
		SourceURL: "https://hospital.aku.edu/cardiology",
		Title:     "Cardiology",
		Body: deptscrape.BodyContent{
			Paragraphs: []string{"First paragraph.", "Second paragraph."},
		},
	}
}

// storyServer emulates the story and folder endpoints; conflicts rejects the
// first n story creations with 422.
func storyServer(t *testing.T, conflicts int64) (*httptest.Server, *[]storyblok.Story) {
	t.Helper()
	var remaining atomic.Int64
	remaining.Store(conflicts)
	var stories []storyblok.Story

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"stories": []storyblok.Story{
					{ID: 10, Name: "Automation", IsFolder: true, ParentID: 0},
					{ID: 11, Name: "health-services", IsFolder: true, ParentID: 10},
				},
				"total": 2,
			})
		case http.MethodPost:
			var in struct {
				Story storyblok.Story `json:"story"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			if remaining.Add(-1) >= 0 {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte(`{"slug":["has already been taken"]}`))
				return
			}
			in.Story.ID = int64(len(stories) + 1000)
			stories = append(stories, in.Story)
			_ = json.NewEncoder(w).Encode(map[string]any{"story": in.Story})
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &stories
}

func newTestPublisher(srv *httptest.Server, opts ...storyblok.PublisherOption) *storyblok.Publisher {
	client := storyblok.NewClient("token", 42,
		storyblok.WithBaseURL(srv.URL),
		storyblok.WithHTTPClient(srv.Client()),
		storyblok.WithBackoff(time.Millisecond),
	)
	return storyblok.NewPublisher(client, opts...)
}

func TestPublisher_PublishRecord(t *testing.T) {
	t.Parallel()

	t.Run("creates a story in the content folder", func(t *testing.T) {
		t.Parallel()
		srv, stories := storyServer(t, 0)
		publisher := newTestPublisher(srv)

		entry, err := publisher.PublishRecord(context.Background(), publishableRecord(), "")
		require.NoError(t, err)
		assert.Equal(t, "Cardiology", entry.Name)
		assert.Equal(t, "cardiology", entry.Slug)

		require.Len(t, *stories, 1)
		created := (*stories)[0]
		assert.Equal(t, int64(11), created.ParentID)
		assert.Equal(t, "health_and_service", created.Content["component"])
		assert.Equal(t, "Cardiology", created.Content["title"])
		assert.Equal(t, "First paragraph.\n\nSecond paragraph.", created.Content["description"])
	})

	t.Run("invalid record is rejected without a remote call", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()
		publisher := newTestPublisher(srv)

		record := publishableRecord()
		record.Title = "  "
		_, err := publisher.PublishRecord(context.Background(), record, "")
		require.Error(t, err)
		assert.Equal(t, deptscrape.EINVALID, deptscrape.ErrorCode(err))
		assert.Equal(t, int64(0), calls.Load())
	})

	t.Run("slug collision consumes the next candidate", func(t *testing.T) {
		t.Parallel()
		srv, stories := storyServer(t, 1)
		publisher := newTestPublisher(srv)

		entry, err := publisher.PublishRecord(context.Background(), publishableRecord(), "")
		require.NoError(t, err)
		assert.NotEqual(t, "cardiology", entry.Slug, "base slug was taken")
		assert.Regexp(t, `^cardiology-\d+$`, entry.Slug)
		require.Len(t, *stories, 1)
	})

	t.Run("exhausted candidates surface as conflict", func(t *testing.T) {
		t.Parallel()
		srv, _ := storyServer(t, 100)
		publisher := newTestPublisher(srv, storyblok.WithSlugAttempts(2))

		_, err := publisher.PublishRecord(context.Background(), publishableRecord(), "")
		require.Error(t, err)
		assert.Equal(t, deptscrape.ECONFLICT, deptscrape.ErrorCode(err))
	})

	t.Run("hero image failure downgrades to text-only", func(t *testing.T) {
		t.Parallel()
		srv, stories := storyServer(t, 0)
		publisher := newTestPublisher(srv)

		record := publishableRecord()
		record.HeroImage = "missing.png"
		entry, err := publisher.PublishRecord(context.Background(), record, t.TempDir())
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)

		require.Len(t, *stories, 1)
		assert.NotContains(t, (*stories)[0].Content, "image")
	})

	t.Run("hero image uploads and lands in the story content", func(t *testing.T) {
		t.Parallel()
		imageDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(imageDir, "hero.png"), []byte("png"), 0o644))

		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		var stories []storyblok.Story
		mux.HandleFunc("/spaces/42/assets", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(storyblok.SignedUpload{
				ID:      55,
				PostURL: srv.URL + "/upload",
				Fields:  map[string]string{"key": "f/42/hero.png"},
			})
		})
		mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		mux.HandleFunc("/spaces/42/stories", func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				_ = json.NewEncoder(w).Encode(map[string]any{"stories": []storyblok.Story{}, "total": 0})
				return
			}
			var in struct {
				Story storyblok.Story `json:"story"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			in.Story.ID = int64(len(stories) + 1)
			stories = append(stories, in.Story)
			_ = json.NewEncoder(w).Encode(map[string]any{"story": in.Story})
		})

		publisher := newTestPublisher(srv, storyblok.WithFolderPath(nil))
		record := publishableRecord()
		record.HeroImage = "hero.png"

		_, err := publisher.PublishRecord(context.Background(), record, imageDir)
		require.NoError(t, err)

		require.Len(t, stories, 1)
		image, ok := stories[0].Content["image"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "https://a.storyblok.com/f/42/hero.png", image["filename"])
		assert.Equal(t, "asset", image["fieldtype"])
	})
}
