package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}

func newTestClient(srv *httptest.Server) *Client {
	client := NewClient("test-key")
	client.httpClient = srv.Client()
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return client
}

func TestSearchBuildsFreeTextQuery(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}})
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "The Midnight", []string{"music", "concert"})

	assert.Equal(t, nil, err)
	assert.Equal(t, "The Midnight music concert", got.Get("q"))
	assert.Equal(t, "video", got.Get("type"))
	assert.Equal(t, "snippet", got.Get("part"))
	assert.Equal(t, "test-key", got.Get("key"))
}

func TestSearchParsesItems(t *testing.T) {
	payload := map[string]interface{}{
		"items": []map[string]interface{}{
			{
				"id": map[string]string{"videoId": "dQw4w9WgXcQ"},
				"snippet": map[string]interface{}{
					"title":        "The Midnight - Live",
					"description":  "Full set",
					"channelTitle": "The Midnight",
					"publishedAt":  "2026-01-15T20:00:00Z",
					"thumbnails": map[string]interface{}{
						"high": map[string]string{"url": "https://i.ytimg.example/hq.jpg"},
					},
				},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	videos, err := newTestClient(srv).Search(context.Background(), "The Midnight", nil)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(videos))
	assert.Equal(t, "dQw4w9WgXcQ", videos[0].ID)
	assert.Equal(t, "The Midnight - Live", videos[0].Title)
	assert.Equal(t, "The Midnight", videos[0].Channel)
	assert.Equal(t, "https://i.ytimg.example/hq.jpg", videos[0].Thumbnail)
	assert.NotEqual(t, time.Time{}, videos[0].PublishedAt)
}

func TestSearchReturnsErrorOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), "anyone", nil)

	assert.NotEqual(t, nil, err)
}

func TestEmbedURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", EmbedURL("dQw4w9WgXcQ"))
}
