package aggregator

import (
	"time"

	"github.com/dbkarmindj67/TicketsandGear/internal/model"
	"github.com/dbkarmindj67/TicketsandGear/pkg/rssfeed"
	"github.com/dbkarmindj67/TicketsandGear/pkg/ticketmaster"
)

// Pure board update functions. Every function that applies a fetch result
// carries the generation the fetch was issued under; a mismatch means the
// criteria changed while the request was in flight and the result is
// discarded instead of applied.

func beginLoad(b *model.Board, cat model.Category) {
	b.Categories[cat].Phase = model.PhaseLoading
}

// applySearch installs a search result into one category. appendEvents
// distinguishes "load more" from an initial or criteria-reset load. Returns
// false when the result is stale.
func applySearch(b *model.Board, cat model.Category, gen uint64, res *ticketmaster.SearchResult, appendEvents bool) bool {
	if gen != b.Generation {
		return false
	}
	st := b.Categories[cat]
	if appendEvents {
		st.Events = append(st.Events, res.Events...)
	} else {
		st.Events = res.Events
	}
	st.Phase = model.PhaseLoaded
	consumed := res.Page.Number + 1
	if consumed > res.Page.TotalPages {
		consumed = res.Page.TotalPages
	}
	st.Pagination = model.PaginationState{
		CurrentPage:   consumed,
		TotalPages:    res.Page.TotalPages,
		MoreAvailable: consumed < res.Page.TotalPages,
	}
	return true
}

// applyFailure marks one category failed with an empty list. The other
// categories keep whatever they have.
func applyFailure(b *model.Board, cat model.Category, gen uint64) bool {
	if gen != b.Generation {
		return false
	}
	st := b.Categories[cat]
	st.Phase = model.PhaseFailed
	st.Events = []ticketmaster.Event{}
	st.Pagination = model.PaginationState{}
	return true
}

// applyTrending installs the degraded-mode result: the undifferentiated
// trending list goes into music, the other categories are cleared.
func applyTrending(b *model.Board, gen uint64, events []ticketmaster.Event) bool {
	if gen != b.Generation {
		return false
	}
	b.Trending = true
	for cat, st := range b.Categories {
		st.Phase = model.PhaseLoaded
		st.Pagination = model.PaginationState{}
		if cat == model.CategoryMusic {
			st.Events = events
		} else {
			st.Events = []ticketmaster.Event{}
		}
	}
	return true
}

// nextPage returns the page index a "load more" should fetch for the
// category, or false when no more pages exist. CurrentPage counts consumed
// pages, so it doubles as the zero-based index of the next one.
func nextPage(b *model.Board, cat model.Category) (int, bool) {
	p := b.Categories[cat].Pagination
	if p.CurrentPage >= p.TotalPages {
		return 0, false
	}
	return p.CurrentPage, true
}

// resetCriteria applies a sort or date change: all categories drop to page
// zero and the generation advances so in-flight results get discarded.
func resetCriteria(b *model.Board, sort string, startDate time.Time) {
	if sort != "" {
		b.Sort = sort
	}
	if !startDate.IsZero() {
		b.StartDate = startDate
	}
	b.Generation++
	b.Trending = false
	for _, st := range b.Categories {
		st.Phase = model.PhaseIdle
		st.Events = []ticketmaster.Event{}
		st.Pagination = model.PaginationState{}
	}
}

// snapshot copies the board so callers can serialize it without holding the
// registry lock.
func snapshot(b *model.Board) *model.Board {
	out := *b
	out.Categories = make(map[model.Category]*model.CategoryState, len(b.Categories))
	for cat, st := range b.Categories {
		cp := *st
		cp.Events = append([]ticketmaster.Event(nil), st.Events...)
		out.Categories[cat] = &cp
	}
	out.News = append([]rssfeed.NewsItem(nil), b.News...)
	return &out
}
