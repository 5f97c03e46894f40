package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const baseURL = "https://maps.googleapis.com/maps/api/geocode/json"

var (
	// ErrNoResults means the geocoding API returned zero results for the
	// coordinates.
	ErrNoResults = errors.New("geocode: no results found")
	// ErrCityNotFound means no locality-typed address component exists in
	// the first result.
	ErrCityNotFound = errors.New("geocode: city not found")
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

type geocodeResponse struct {
	Results []struct {
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
	Status string `json:"status"`
}

// ResolveCity reverse-geocodes the coordinates and returns the long name of
// the first locality component of the first result. No retry; callers
// re-invoke on failure.
func (c *Client) ResolveCity(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode fetch: unexpected status %d", resp.StatusCode)
	}

	var raw geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("geocode decode: %w", err)
	}

	if len(raw.Results) == 0 {
		return "", ErrNoResults
	}

	for _, component := range raw.Results[0].AddressComponents {
		for _, typ := range component.Types {
			if typ == "locality" {
				return component.LongName, nil
			}
		}
	}
	return "", ErrCityNotFound
}
