package aggregator

import (
	"strings"
	"unicode/utf8"

	"github.com/dbkarmindj67/TicketsandGear/pkg/rssfeed"
)

// ExtractKeywords splits an event name into naive keyword tokens. Only
// tokens longer than 3 characters survive, so a name like "U2" yields no
// tokens at all.
func ExtractKeywords(eventName string) []string {
	var keywords []string
	for _, word := range strings.Fields(eventName) {
		if utf8.RuneCountInString(word) > 3 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// MatchNews returns the items whose title or description contains any of
// the keywords. Matching is a case-sensitive substring check.
func MatchNews(items []rssfeed.NewsItem, keywords []string) []rssfeed.NewsItem {
	var matched []rssfeed.NewsItem
	for _, item := range items {
		for _, keyword := range keywords {
			if strings.Contains(item.Title, keyword) || strings.Contains(item.Description, keyword) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}
