package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dbkarmindj67/TicketsandGear/pkg/geocode"
	"github.com/dbkarmindj67/TicketsandGear/pkg/rssfeed"
	"github.com/dbkarmindj67/TicketsandGear/pkg/ticketmaster"
)

type EventSearcher interface {
	Search(ctx context.Context, p ticketmaster.SearchParams) (*ticketmaster.SearchResult, error)
}

type CityResolver interface {
	ResolveCity(ctx context.Context, lat, lon float64) (string, error)
}

type NewsFetcher interface {
	FetchCategory(ctx context.Context, category string) ([][]rssfeed.NewsItem, error)
	Categories() []string
}

// SearchHandler exposes the raw event search, the city resolver and the
// news feeds without going through a session board.
type SearchHandler struct {
	events EventSearcher
	geo    CityResolver
	news   NewsFetcher
}

func NewSearchHandler(events EventSearcher, geo CityResolver, news NewsFetcher) *SearchHandler {
	return &SearchHandler{events: events, geo: geo, news: news}
}

// SearchEvents runs a single parameterized search.
func (h *SearchHandler) SearchEvents(c *gin.Context) {
	page := 0
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return
		}
		page = parsed
	}

	startDate, ok := parseDate(c)
	if !ok {
		return
	}

	res, err := h.events.Search(c.Request.Context(), ticketmaster.SearchParams{
		Keyword:   c.Query("keyword"),
		City:      c.Query("city"),
		Sort:      c.DefaultQuery("sort", "date,asc"),
		Page:      page,
		StartDate: startDate,
	})
	if err != nil {
		slog.Error("error searching events", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not search events"})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Events: toEventResponses(res.Events), Page: res.Page})
}

// GetCity resolves coordinates to a city name.
func (h *SearchHandler) GetCity(c *gin.Context) {
	lat, lon, ok := parseCoords(c)
	if !ok {
		return
	}

	city, err := h.geo.ResolveCity(c.Request.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) || errors.Is(err, geocode.ErrCityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		slog.Error("error resolving city", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not resolve city"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"city": city})
}

// GetNews fetches every configured feed of one category.
func (h *SearchHandler) GetNews(c *gin.Context) {
	category := c.Param("category")

	batches, err := h.news.FetchCategory(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, rssfeed.ErrUnknownCategory) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown category"})
			return
		}
		slog.Error("error fetching news", "category", category, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch news"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category, "feeds": batches})
}

// GetNewsCategories lists the configured news categories.
func (h *SearchHandler) GetNewsCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.news.Categories()})
}

// GetHealth reports liveness.
func (h *SearchHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
