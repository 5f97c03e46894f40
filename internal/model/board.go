package model

import (
	"time"

	"github.com/dbkarmindj67/TicketsandGear/pkg/rssfeed"
	"github.com/dbkarmindj67/TicketsandGear/pkg/ticketmaster"
)

// Category is a topical partition used for both event search and news
// matching.
type Category string

const (
	CategoryMusic  Category = "music"
	CategorySports Category = "sports"
	CategoryArts   Category = "arts"
)

// Categories lists all known categories in presentation order.
func Categories() []Category {
	return []Category{CategoryMusic, CategorySports, CategoryArts}
}

// ParseCategory reports whether s names a known category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryMusic, CategorySports, CategoryArts:
		return Category(s), true
	}
	return "", false
}

// CategoryPhase is the load state of one category list.
type CategoryPhase string

const (
	PhaseIdle    CategoryPhase = "idle"
	PhaseLoading CategoryPhase = "loading"
	PhaseLoaded  CategoryPhase = "loaded"
	PhaseFailed  CategoryPhase = "failed"
)

// PaginationState tracks paging for one category. CurrentPage never exceeds
// TotalPages.
type PaginationState struct {
	CurrentPage   int  `json:"current_page"`
	TotalPages    int  `json:"total_pages"`
	MoreAvailable bool `json:"more_available"`
}

// CategoryState is the per-category slice of the board.
type CategoryState struct {
	Phase      CategoryPhase        `json:"phase"`
	Events     []ticketmaster.Event `json:"events"`
	Pagination PaginationState      `json:"pagination"`
}

// Board is the explicit, serializable application state of one discovery
// session. It is mutated only through aggregator update functions.
type Board struct {
	SessionID  string                      `json:"session_id"`
	City       string                      `json:"city"`
	Latitude   float64                     `json:"latitude"`
	Longitude  float64                     `json:"longitude"`
	Sort       string                      `json:"sort"`
	StartDate  time.Time                   `json:"start_date"`
	Generation uint64                      `json:"generation"`
	Trending   bool                        `json:"trending"`
	Categories map[Category]*CategoryState `json:"categories"`
	News       []rssfeed.NewsItem          `json:"news"`
}

// NewBoard returns a board with all categories idle and empty.
func NewBoard(sessionID string) *Board {
	categories := make(map[Category]*CategoryState, len(Categories()))
	for _, c := range Categories() {
		categories[c] = &CategoryState{Phase: PhaseIdle, Events: []ticketmaster.Event{}}
	}
	return &Board{
		SessionID:  sessionID,
		Sort:       "date,asc",
		Categories: categories,
		News:       []rssfeed.NewsItem{},
	}
}
