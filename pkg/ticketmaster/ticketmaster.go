package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const baseURL = "https://app.ticketmaster.com/discovery/v2"

// Fixed query defaults of the discovery client.
const (
	searchRadius = "75"
	pageSize     = "10"
)

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

// SearchParams are the caller-controlled parts of an events query. A zero
// StartDate omits the date filter entirely.
type SearchParams struct {
	Keyword   string
	City      string
	Sort      string
	Page      int
	StartDate time.Time
}

type SearchResult struct {
	Events []Event
	Page   Page
}

type searchResponse struct {
	Embedded *struct {
		Events []Event `json:"events"`
	} `json:"_embedded"`
	Page Page `json:"page"`
}

// Search issues a parameterized events query. Request parameters are a pure
// function of the given params. Transport and decode failures are returned
// to the caller without retry.
func (c *Client) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("keyword", p.Keyword)
	q.Set("sort", p.Sort)
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("radius", searchRadius)
	q.Set("size", pageSize)
	q.Set("unit", "miles")
	q.Set("locale", "*")
	if p.City != "" {
		q.Set("city", p.City)
	}
	if !p.StartDate.IsZero() {
		q.Set("startDateTime", p.StartDate.UTC().Format("2006-01-02T15:04:05Z"))
	}

	var raw searchResponse
	if err := c.getJSON(ctx, baseURL+"/events.json?"+q.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("ticketmaster search: %w", err)
	}

	res := &SearchResult{Events: []Event{}, Page: raw.Page}
	if raw.Embedded != nil && raw.Embedded.Events != nil {
		res.Events = raw.Embedded.Events
	}
	return res, nil
}

// SearchByURL fetches events from a pre-built query URL, bypassing parameter
// construction. Used for trending and suggestion queries.
func (c *Client) SearchByURL(ctx context.Context, rawURL string) ([]Event, error) {
	var raw searchResponse
	if err := c.getJSON(ctx, rawURL, &raw); err != nil {
		return nil, fmt.Errorf("ticketmaster custom url: %w", err)
	}
	if raw.Embedded == nil || raw.Embedded.Events == nil {
		return []Event{}, nil
	}
	return raw.Embedded.Events, nil
}

// Trending queries the suggest endpoint for events near the coordinates.
func (c *Client) Trending(ctx context.Context, lat, lon float64) ([]Event, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("latlong", formatCoord(lat)+","+formatCoord(lon))
	q.Set("locale", "*")
	return c.SearchByURL(ctx, baseURL+"/suggest?"+q.Encode())
}

// EventByID fetches the full record of a single event.
func (c *Client) EventByID(ctx context.Context, id string) (*Event, error) {
	var ev Event
	u := baseURL + "/events/" + url.PathEscape(id) + ".json?apikey=" + url.QueryEscape(c.apiKey)
	if err := c.getJSON(ctx, u, &ev); err != nil {
		return nil, fmt.Errorf("ticketmaster event %s: %w", id, err)
	}
	return &ev, nil
}

type imagesResponse struct {
	Type   string  `json:"type"`
	ID     string  `json:"id"`
	Images []Image `json:"images"`
}

// EventImages fetches the image list of a single event.
func (c *Client) EventImages(ctx context.Context, id string) ([]Image, error) {
	var raw imagesResponse
	u := baseURL + "/events/" + url.PathEscape(id) + "/images.json?apikey=" + url.QueryEscape(c.apiKey)
	if err := c.getJSON(ctx, u, &raw); err != nil {
		return nil, fmt.Errorf("ticketmaster images %s: %w", id, err)
	}
	if raw.Images == nil {
		return []Image{}, nil
	}
	return raw.Images, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
