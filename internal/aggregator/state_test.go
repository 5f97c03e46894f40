package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dbkarmindj67/TicketsandGear/internal/model"
	"github.com/dbkarmindj67/TicketsandGear/pkg/ticketmaster"
)

func searchResult(n int, page, totalPages int) *ticketmaster.SearchResult {
	events := make([]ticketmaster.Event, n)
	for i := range events {
		events[i] = ticketmaster.Event{ID: string(rune('a' + i))}
	}
	return &ticketmaster.SearchResult{
		Events: events,
		Page:   ticketmaster.Page{Number: page, TotalPages: totalPages, TotalElements: totalPages * n},
	}
}

func TestApplySearchSetsPagination(t *testing.T) {
	b := model.NewBoard("s1")

	ok := applySearch(b, model.CategoryMusic, b.Generation, searchResult(2, 0, 5), false)

	assert.True(t, ok)
	st := b.Categories[model.CategoryMusic]
	assert.Equal(t, model.PhaseLoaded, st.Phase)
	assert.Len(t, st.Events, 2)
	assert.Equal(t, 1, st.Pagination.CurrentPage)
	assert.Equal(t, 5, st.Pagination.TotalPages)
	assert.True(t, st.Pagination.MoreAvailable)
}

func TestApplySearchDiscardsStaleGeneration(t *testing.T) {
	b := model.NewBoard("s1")
	staleGen := b.Generation
	resetCriteria(b, "name,asc", time.Time{})

	ok := applySearch(b, model.CategoryMusic, staleGen, searchResult(2, 0, 5), false)

	assert.False(t, ok)
	assert.Empty(t, b.Categories[model.CategoryMusic].Events)
}

func TestApplySearchAppendOnLoadMore(t *testing.T) {
	b := model.NewBoard("s1")
	applySearch(b, model.CategoryArts, b.Generation, searchResult(2, 0, 3), false)
	applySearch(b, model.CategoryArts, b.Generation, searchResult(2, 1, 3), true)

	st := b.Categories[model.CategoryArts]
	assert.Len(t, st.Events, 4)
	assert.Equal(t, 2, st.Pagination.CurrentPage)
}

func TestCurrentPageNeverExceedsTotalPages(t *testing.T) {
	b := model.NewBoard("s1")
	applySearch(b, model.CategoryMusic, b.Generation, searchResult(2, 2, 3), false)

	st := b.Categories[model.CategoryMusic]
	assert.Equal(t, 3, st.Pagination.CurrentPage)
	assert.Equal(t, 3, st.Pagination.TotalPages)
	assert.False(t, st.Pagination.MoreAvailable)

	_, more := nextPage(b, model.CategoryMusic)
	assert.False(t, more)
}

func TestApplySearchEmptyResultClampsCurrentPage(t *testing.T) {
	b := model.NewBoard("s1")
	applySearch(b, model.CategoryMusic, b.Generation, searchResult(0, 0, 0), false)

	st := b.Categories[model.CategoryMusic]
	assert.Equal(t, 0, st.Pagination.CurrentPage)
	assert.Equal(t, 0, st.Pagination.TotalPages)
	assert.False(t, st.Pagination.MoreAvailable)
	assert.True(t, st.Pagination.CurrentPage <= st.Pagination.TotalPages)

	_, more := nextPage(b, model.CategoryMusic)
	assert.False(t, more)
}

func TestNextPageReturnsConsumedCount(t *testing.T) {
	b := model.NewBoard("s1")
	applySearch(b, model.CategorySports, b.Generation, searchResult(2, 0, 4), false)

	page, more := nextPage(b, model.CategorySports)
	assert.True(t, more)
	assert.Equal(t, 1, page)
}

func TestResetCriteriaResetsAllCategories(t *testing.T) {
	b := model.NewBoard("s1")
	for _, cat := range model.Categories() {
		applySearch(b, cat, b.Generation, searchResult(2, 1, 4), false)
	}
	gen := b.Generation

	resetCriteria(b, "name,asc", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, gen+1, b.Generation)
	assert.Equal(t, "name,asc", b.Sort)
	for _, cat := range model.Categories() {
		st := b.Categories[cat]
		assert.Equal(t, model.PhaseIdle, st.Phase)
		assert.Empty(t, st.Events)
		assert.Equal(t, 0, st.Pagination.CurrentPage)
	}
}

func TestResetCriteriaKeepsSortWhenEmpty(t *testing.T) {
	b := model.NewBoard("s1")
	resetCriteria(b, "", time.Time{})
	assert.Equal(t, "date,asc", b.Sort)
}

func TestApplyTrendingFillsOnlyMusic(t *testing.T) {
	b := model.NewBoard("s1")
	applySearch(b, model.CategorySports, b.Generation, searchResult(2, 0, 2), false)

	events := []ticketmaster.Event{{ID: "t1"}, {ID: "t2"}}
	ok := applyTrending(b, b.Generation, events)

	assert.True(t, ok)
	assert.True(t, b.Trending)
	assert.Len(t, b.Categories[model.CategoryMusic].Events, 2)
	assert.Empty(t, b.Categories[model.CategorySports].Events)
	assert.Empty(t, b.Categories[model.CategoryArts].Events)
}

func TestApplyFailureClearsOnlyThatCategory(t *testing.T) {
	b := model.NewBoard("s1")
	applySearch(b, model.CategoryMusic, b.Generation, searchResult(2, 0, 2), false)

	applyFailure(b, model.CategoryArts, b.Generation)

	assert.Equal(t, model.PhaseFailed, b.Categories[model.CategoryArts].Phase)
	assert.Empty(t, b.Categories[model.CategoryArts].Events)
	assert.Len(t, b.Categories[model.CategoryMusic].Events, 2)
}

func TestSnapshotIsDetached(t *testing.T) {
	b := model.NewBoard("s1")
	applySearch(b, model.CategoryMusic, b.Generation, searchResult(1, 0, 1), false)

	snap := snapshot(b)
	applySearch(b, model.CategoryMusic, b.Generation, searchResult(2, 0, 1), false)

	assert.Len(t, snap.Categories[model.CategoryMusic].Events, 1)
	assert.Len(t, b.Categories[model.CategoryMusic].Events, 2)
}
