package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/dbkarmindj67/TicketsandGear/pkg/rssfeed"
)

// RelayHandler forwards browser requests to upstreams that do not allow
// cross-origin calls, keeping the API key on the server side.
type RelayHandler struct {
	eventsURL  string
	apiKey     string
	httpClient *http.Client
	feeds      RelayFeedFetcher
}

type RelayFeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) (*rssfeed.FeedResult, error)
}

const defaultEventsURL = "https://app.ticketmaster.com/discovery/v2/events.json"

func NewRelayHandler(eventsURL, apiKey string, feeds RelayFeedFetcher) *RelayHandler {
	if eventsURL == "" {
		eventsURL = defaultEventsURL
	}
	return &RelayHandler{
		eventsURL:  eventsURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		feeds:      feeds,
	}
}

// RelayEvents forwards keyword and countryCode to the events endpoint and
// writes the upstream JSON body back unmodified.
func (h *RelayHandler) RelayEvents(c *gin.Context) {
	params := url.Values{}
	params.Set("apikey", h.apiKey)
	if keyword := c.Query("keyword"); keyword != "" {
		params.Set("keyword", keyword)
	}
	if country := c.Query("countryCode"); country != "" {
		params.Set("countryCode", country)
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, h.eventsURL+"?"+params.Encode(), nil)
	if err != nil {
		slog.Error("error building relay request", "error", err)
		c.String(http.StatusInternalServerError, "relay failed")
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		slog.Error("error relaying events request", "error", err)
		c.String(http.StatusInternalServerError, "relay failed")
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("error reading relay response", "error", err)
		c.String(http.StatusInternalServerError, "relay failed")
		return
	}

	c.Data(resp.StatusCode, "application/json", body)
}

// RelayRSS proxies a single feed through the RSS-to-JSON converter.
func (h *RelayHandler) RelayRSS(c *gin.Context) {
	feedURL := c.Query("url")
	if feedURL == "" {
		c.String(http.StatusBadRequest, "url is required")
		return
	}

	result, err := h.feeds.Fetch(c.Request.Context(), feedURL)
	if err != nil {
		slog.Error("error relaying rss request", "url", feedURL, "error", err)
		c.String(http.StatusInternalServerError, "relay failed")
		return
	}

	c.JSON(http.StatusOK, result)
}
