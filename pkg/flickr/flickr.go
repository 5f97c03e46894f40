package flickr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const baseURL = "https://api.flickr.com/services/rest/"

const defaultPerPage = 10

type Client struct {
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type searchResponse struct {
	Photos struct {
		Photo []photo `json:"photo"`
	} `json:"photos"`
	Stat string `json:"stat"`
}

type photo struct {
	ID     string `json:"id"`
	Secret string `json:"secret"`
	Server string `json:"server"`
	Farm   int    `json:"farm"`
}

// Search returns canonical photo URLs for an artist. The search text is the
// artist name and tags joined as free text. Errors are returned; the caller
// decides whether the view degrades.
func (c *Client) Search(ctx context.Context, artist string, tags []string) ([]string, error) {
	q := url.Values{}
	q.Set("method", "flickr.photos.search")
	q.Set("api_key", c.apiKey)
	q.Set("text", strings.TrimSpace(artist+" "+strings.Join(tags, " ")))
	q.Set("format", "json")
	q.Set("nojsoncallback", "1")
	q.Set("per_page", strconv.Itoa(defaultPerPage))
	q.Set("page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flickr fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flickr fetch: unexpected status %d", resp.StatusCode)
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("flickr decode: %w", err)
	}

	urls := make([]string, 0, len(raw.Photos.Photo))
	for _, p := range raw.Photos.Photo {
		urls = append(urls, photoURL(p))
	}
	return urls, nil
}

func photoURL(p photo) string {
	return fmt.Sprintf("https://farm%d.staticflickr.com/%s/%s_%s.jpg", p.Farm, p.Server, p.ID, p.Secret)
}
