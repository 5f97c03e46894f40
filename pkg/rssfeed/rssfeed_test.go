package rssfeed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/assert/v2"
)

func feedPayload(title string) map[string]interface{} {
	return map[string]interface{}{
		"status": "ok",
		"feed":   map[string]string{"title": title, "url": "https://example.com/rss"},
		"items": []map[string]interface{}{
			{
				"title":       title + " item",
				"pubDate":     "2026-02-26 11:02:00",
				"link":        "https://example.com/a",
				"description": "something happened",
				"categories":  []string{"news"},
			},
		},
	}
}

func TestFetchSingleFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://pitchfork.com/feed/feed-video/rss", r.URL.Query().Get("rss_url"))
		json.NewEncoder(w).Encode(feedPayload("Pitchfork"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	result, err := client.Fetch(context.Background(), "https://pitchfork.com/feed/feed-video/rss")

	assert.Equal(t, nil, err)
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "Pitchfork", result.Feed.Title)
	assert.Equal(t, 1, len(result.Items))
	assert.Equal(t, "Pitchfork item", result.Items[0].Title)
}

func TestFetchCategoryReturnsOneBatchPerFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(feedPayload(r.URL.Query().Get("rss_url")))
	}))
	defer srv.Close()

	feeds := map[string][]string{
		"music": {"https://one.example/rss", "https://two.example/rss"},
	}
	client := NewClient(srv.URL, feeds)
	batches, err := client.FetchCategory(context.Background(), "music")

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(batches))
	assert.Equal(t, "https://one.example/rss item", batches[0][0].Title)
	assert.Equal(t, "https://two.example/rss item", batches[1][0].Title)
}

func TestFetchCategoryUnknownCategory(t *testing.T) {
	client := NewClient("http://unused.example", map[string][]string{"music": {"https://one.example/rss"}})

	_, err := client.FetchCategory(context.Background(), "opera")

	assert.Equal(t, true, errors.Is(err, ErrUnknownCategory))
}

func TestFetchCategoryOneFailureFailsBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("rss_url") == "https://bad.example/rss" {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(feedPayload("ok feed"))
	}))
	defer srv.Close()

	feeds := map[string][]string{
		"sports": {"https://good.example/rss", "https://bad.example/rss"},
	}
	client := NewClient(srv.URL, feeds)
	_, err := client.FetchCategory(context.Background(), "sports")

	assert.NotEqual(t, nil, err)
}

func TestDefaultFeedsCoverAllCategories(t *testing.T) {
	feeds := DefaultFeeds()

	for _, category := range []string{"music", "sports", "arts"} {
		assert.Equal(t, 2, len(feeds[category]))
	}
}

func TestLoadFeedsOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	content := "feeds:\n  music:\n    - https://custom.example/rss\n"
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.Equal(t, nil, err)

	feeds, err := LoadFeeds(path)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"https://custom.example/rss"}, feeds["music"])
	assert.Equal(t, 2, len(feeds["sports"]))
	assert.Equal(t, 2, len(feeds["arts"]))
}

func TestLoadFeedsMissingFile(t *testing.T) {
	_, err := LoadFeeds(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NotEqual(t, nil, err)
}

func TestCategoriesSorted(t *testing.T) {
	c := NewClient("", map[string][]string{
		"sports": {"https://a.example/rss"},
		"arts":   {"https://b.example/rss"},
		"music":  {"https://c.example/rss"},
	})

	assert.Equal(t, []string{"arts", "music", "sports"}, c.Categories())
}
