package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	dshttp "github.com/mhaseeb/deptscrape/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlset(urls ...string) string {
	s := `<?xml version="1.0" encoding="UTF-8"?><urlset>`
	for _, u := range urls {
		s += "<url><loc>" + u + "</loc></url>"
	}
	return s + "</urlset>"
}

func TestSitemapSource_URLs(t *testing.T) {
	t.Parallel()

	t.Run("discovers sitemap via robots.txt and filters by path prefix", func(t *testing.T) {
		t.Parallel()
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/sitemap.xml\n", srv.URL)
		})
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlset(
				srv.URL+"/services/cardiology",
				srv.URL+"/services/neurosurgery",
				srv.URL+"/about",
				srv.URL+"/services/cardiology",
			))
		})

		source := dshttp.NewSitemapSource(srv.URL+"/services", srv.Client())
		urls, err := source.URLs(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{
			srv.URL + "/services/cardiology",
			srv.URL + "/services/neurosurgery",
		}, urls, "off-prefix and duplicate URLs are dropped")
	})

	t.Run("falls back to /sitemap.xml without robots.txt", func(t *testing.T) {
		t.Parallel()
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlset(srv.URL+"/cardiology"))
		})

		source := dshttp.NewSitemapSource(srv.URL, srv.Client())
		urls, err := source.URLs(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/cardiology"}, urls)
	})

	t.Run("follows nested sitemap indexes", func(t *testing.T) {
		t.Parallel()
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "Sitemap: %s/index.xml\n", srv.URL)
		})
		mux.HandleFunc("/index.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0"?><sitemapindex>
				<sitemap><loc>%s/a.xml</loc></sitemap>
				<sitemap><loc>%s/b.xml</loc></sitemap>
			</sitemapindex>`, srv.URL, srv.URL)
		})
		mux.HandleFunc("/a.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlset(srv.URL+"/cardiology"))
		})
		mux.HandleFunc("/b.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, urlset(srv.URL+"/oncology"))
		})

		source := dshttp.NewSitemapSource(srv.URL, srv.Client())
		urls, err := source.URLs(context.Background())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{srv.URL + "/cardiology", srv.URL + "/oncology"}, urls)
	})

	t.Run("no sitemap yields empty slice", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		source := dshttp.NewSitemapSource(srv.URL, srv.Client())
		urls, err := source.URLs(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})

	t.Run("invalid base URL is rejected", func(t *testing.T) {
		t.Parallel()
		source := dshttp.NewSitemapSource("://bad", nil)
		_, err := source.URLs(context.Background())
		require.Error(t, err)
	})
}
