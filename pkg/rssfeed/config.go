package rssfeed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFeeds returns the built-in per-category feed URLs.
func DefaultFeeds() map[string][]string {
	return map[string][]string{
		"music": {
			"https://pitchfork.com/feed/feed-album-reviews/rss",
			"https://pitchfork.com/feed/feed-video/rss",
		},
		"sports": {
			"https://www.espn.com/espn/rss/news",
			"https://deadspin.com/rss",
		},
		"arts": {
			"https://www.theartnewspaper.com/rss.xml",
			"http://rss.cnn.com/rss/cnn_showbiz.rss",
		},
	}
}

type feedsFile struct {
	Feeds map[string][]string `yaml:"feeds"`
}

// LoadFeeds reads a per-category feed map from a YAML file. Categories not
// present in the file keep their built-in defaults.
func LoadFeeds(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("feeds config: %w", err)
	}

	var parsed feedsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("feeds config: %w", err)
	}

	feeds := DefaultFeeds()
	for category, urls := range parsed.Feeds {
		if len(urls) > 0 {
			feeds[category] = urls
		}
	}
	return feeds, nil
}
