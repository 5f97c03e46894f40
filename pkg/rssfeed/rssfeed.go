package rssfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultProxyURL converts RSS feeds to JSON.
const DefaultProxyURL = "https://api.rss2json.com/v1/api.json"

// ErrUnknownCategory means no feed URLs are configured for the category.
var ErrUnknownCategory = errors.New("rssfeed: unknown category")

type Client struct {
	proxyURL   string
	feeds      map[string][]string
	httpClient *http.Client
}

// NewClient builds a feed client over the RSS-to-JSON proxy. An empty
// proxyURL falls back to DefaultProxyURL, nil feeds fall back to the
// built-in category map.
func NewClient(proxyURL string, feeds map[string][]string) *Client {
	if proxyURL == "" {
		proxyURL = DefaultProxyURL
	}
	if feeds == nil {
		feeds = DefaultFeeds()
	}
	return &Client{
		proxyURL:   proxyURL,
		feeds:      feeds,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewsItem is one entry of a converted feed.
type NewsItem struct {
	Title       string   `json:"title"`
	PubDate     string   `json:"pubDate"`
	Link        string   `json:"link"`
	GUID        string   `json:"guid"`
	Author      string   `json:"author"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

type FeedInfo struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type FeedResult struct {
	Status string     `json:"status"`
	Feed   FeedInfo   `json:"feed"`
	Items  []NewsItem `json:"items"`
}

// Fetch retrieves a single feed through the proxy.
func (c *Client) Fetch(ctx context.Context, feedURL string) (*FeedResult, error) {
	u := c.proxyURL + "?rss_url=" + url.QueryEscape(feedURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rss fetch %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rss fetch %s: unexpected status %d", feedURL, resp.StatusCode)
	}

	var result FeedResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("rss decode %s: %w", feedURL, err)
	}
	if result.Items == nil {
		result.Items = []NewsItem{}
	}
	return &result, nil
}

// FetchCategory fetches every configured feed of the category in parallel
// and returns one item list per feed, in configured order. One failing feed
// fails the whole batch.
func (c *Client) FetchCategory(ctx context.Context, category string) ([][]NewsItem, error) {
	urls, ok := c.feeds[category]
	if !ok || len(urls) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	batches := make([][]NewsItem, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	for i, feedURL := range urls {
		i, feedURL := i, feedURL
		g.Go(func() error {
			result, err := c.Fetch(gctx, feedURL)
			if err != nil {
				return err
			}
			batches[i] = result.Items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}

// Categories lists the configured category names, sorted.
func (c *Client) Categories() []string {
	out := make([]string, 0, len(c.feeds))
	for name := range c.feeds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
