package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dbkarmindj67/TicketsandGear/pkg/rssfeed"
)

func TestExtractKeywordsDropsShortTokens(t *testing.T) {
	assert.Equal(t, []string{"Midnight", "Tour"}, ExtractKeywords("The Midnight Tour"))
}

func TestExtractKeywordsShortNameYieldsNothing(t *testing.T) {
	assert.Empty(t, ExtractKeywords("U2"))
	assert.Empty(t, ExtractKeywords("A B CD EFG"))
}

func TestMatchNewsByTitleOrDescription(t *testing.T) {
	items := []rssfeed.NewsItem{
		{Title: "Album review", Description: "A look at the Midnight era"},
		{Title: "Tour dates announced", Description: "big year ahead"},
		{Title: "Unrelated story", Description: "nothing here"},
	}

	matched := MatchNews(items, ExtractKeywords("The Midnight Tour"))

	assert.Len(t, matched, 2)
	assert.Equal(t, "Album review", matched[0].Title)
	assert.Equal(t, "Tour dates announced", matched[1].Title)
}

func TestMatchNewsIsCaseSensitive(t *testing.T) {
	items := []rssfeed.NewsItem{
		{Title: "the midnight in lowercase", Description: "still lowercase"},
	}

	assert.Empty(t, MatchNews(items, []string{"Midnight"}))
}

func TestMatchNewsNoKeywords(t *testing.T) {
	items := []rssfeed.NewsItem{{Title: "anything"}}
	assert.Empty(t, MatchNews(items, nil))
}
