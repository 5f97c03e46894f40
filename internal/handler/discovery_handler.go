package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dbkarmindj67/TicketsandGear/internal/aggregator"
	"github.com/dbkarmindj67/TicketsandGear/internal/model"
	"github.com/dbkarmindj67/TicketsandGear/pkg/geocode"
)

// BoardService is what the discovery handlers need from the aggregation
// workflow.
type BoardService interface {
	LoadBoard(ctx context.Context, sessionID string, lat, lon float64, sort string, startDate time.Time) (*model.Board, error)
	LoadMore(ctx context.Context, sessionID string, cat model.Category) (*model.Board, error)
	SetCriteria(ctx context.Context, sessionID, sort string, startDate time.Time) (*model.Board, error)
	EventDetails(ctx context.Context, sessionID, eventID, artistName string, tags []string) (*model.EnrichedEvent, error)
}

type DiscoveryHandler struct {
	boards BoardService
}

func NewDiscoveryHandler(boards BoardService) *DiscoveryHandler {
	return &DiscoveryHandler{boards: boards}
}

// GetBoard loads a fresh three-category board for the coordinates.
func (h *DiscoveryHandler) GetBoard(c *gin.Context) {
	lat, lon, ok := parseCoords(c)
	if !ok {
		return
	}

	startDate, ok := parseDate(c)
	if !ok {
		return
	}

	board, err := h.boards.LoadBoard(c.Request.Context(), c.Query("session"), lat, lon, c.Query("sort"), startDate)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResults) || errors.Is(err, geocode.ErrCityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		slog.Error("error loading board", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not resolve events for your location"})
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

// LoadMore advances one category by a page. A category already on its last
// page comes back unchanged.
func (h *DiscoveryHandler) LoadMore(c *gin.Context) {
	sessionID := c.Query("session")
	cat, ok := model.ParseCategory(c.Query("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	board, err := h.boards.LoadMore(c.Request.Context(), sessionID, cat)
	if err != nil {
		if errors.Is(err, aggregator.ErrUnknownSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
			return
		}
		slog.Error("error loading more events", "category", cat, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not load more events"})
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

// SetCriteria applies a sort or date change and re-fetches all categories
// from page zero.
func (h *DiscoveryHandler) SetCriteria(c *gin.Context) {
	startDate, ok := parseDate(c)
	if !ok {
		return
	}

	board, err := h.boards.SetCriteria(c.Request.Context(), c.Query("session"), c.Query("sort"), startDate)
	if err != nil {
		if errors.Is(err, aggregator.ErrUnknownSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
			return
		}
		slog.Error("error changing criteria", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not apply criteria"})
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

// GetEventDetails serves the enriched detail view of one event.
func (h *DiscoveryHandler) GetEventDetails(c *gin.Context) {
	eventID := c.Param("id")
	sessionID := c.Query("session")
	artistName := c.Query("name")
	tags := c.QueryArray("tag")
	if len(tags) == 0 {
		tags = []string{"music", "concert"}
	}

	detail, err := h.boards.EventDetails(c.Request.Context(), sessionID, eventID, artistName, tags)
	if err != nil {
		if errors.Is(err, aggregator.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many detail requests, try again shortly"})
			return
		}
		slog.Error("error fetching event details", "event_id", eventID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch event details"})
		return
	}

	c.JSON(http.StatusOK, toDetailResponse(detail))
}

func parseCoords(c *gin.Context) (float64, float64, bool) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location unavailable: lat and lon are required"})
		return 0, 0, false
	}
	return lat, lon, true
}

func parseDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Time{}, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}
