package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dbkarmindj67/TicketsandGear/internal/cache"
	"github.com/dbkarmindj67/TicketsandGear/internal/metrics"
	"github.com/dbkarmindj67/TicketsandGear/internal/model"
	"github.com/dbkarmindj67/TicketsandGear/internal/ratelimit"
	"github.com/dbkarmindj67/TicketsandGear/pkg/rssfeed"
	"github.com/dbkarmindj67/TicketsandGear/pkg/ticketmaster"
	"github.com/dbkarmindj67/TicketsandGear/pkg/youtube"
)

var (
	// ErrUnknownSession means no board exists for the session id.
	ErrUnknownSession = errors.New("aggregator: unknown session")
	// ErrRateLimited means a detail fetch fell inside the per-session
	// window and was skipped, not queued.
	ErrRateLimited = errors.New("aggregator: detail fetch rate limited")
)

// DefaultDetailWindow is the minimum interval between detail fetches for
// one session.
const DefaultDetailWindow = 5000 * time.Millisecond

type EventSource interface {
	Search(ctx context.Context, p ticketmaster.SearchParams) (*ticketmaster.SearchResult, error)
	Trending(ctx context.Context, lat, lon float64) ([]ticketmaster.Event, error)
	EventByID(ctx context.Context, id string) (*ticketmaster.Event, error)
	EventImages(ctx context.Context, id string) ([]ticketmaster.Image, error)
}

type CityResolver interface {
	ResolveCity(ctx context.Context, lat, lon float64) (string, error)
}

type VideoSource interface {
	Search(ctx context.Context, artist string, tags []string) ([]youtube.Video, error)
}

type PhotoSource interface {
	Search(ctx context.Context, artist string, tags []string) ([]string, error)
}

type NewsSource interface {
	FetchCategory(ctx context.Context, category string) ([][]rssfeed.NewsItem, error)
}

type Config struct {
	Events       EventSource
	Geo          CityResolver
	Videos       VideoSource
	Photos       PhotoSource
	News         NewsSource
	Details      cache.DetailStore
	Metrics      *metrics.Metrics
	DetailWindow time.Duration
}

// Aggregator owns the per-session boards and orchestrates the fan-out to
// the upstream clients. All board mutations go through the pure update
// functions in state.go under the registry lock.
type Aggregator struct {
	events  EventSource
	geo     CityResolver
	videos  VideoSource
	photos  PhotoSource
	news    NewsSource
	details cache.DetailStore
	metrics *metrics.Metrics
	limiter *ratelimit.PerSession

	mu     sync.Mutex
	boards map[string]*model.Board
}

func New(cfg Config) *Aggregator {
	window := cfg.DetailWindow
	if window == 0 {
		window = DefaultDetailWindow
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.NewUnregistered()
	}
	return &Aggregator{
		events:  cfg.Events,
		geo:     cfg.Geo,
		videos:  cfg.Videos,
		photos:  cfg.Photos,
		news:    cfg.News,
		details: cfg.Details,
		metrics: m,
		limiter: ratelimit.NewPerSession(window),
		boards:  make(map[string]*model.Board),
	}
}

type categoryResult struct {
	category model.Category
	result   *ticketmaster.SearchResult
	err      error
}

// LoadBoard resolves the city for the coordinates and fans out one search
// per category at page zero. A failing category becomes an empty failed
// list without touching the others; if every category fails, the trending
// fallback fills the music list and clears the rest.
func (a *Aggregator) LoadBoard(ctx context.Context, sessionID string, lat, lon float64, sort string, startDate time.Time) (*model.Board, error) {
	city, err := a.geo.ResolveCity(ctx, lat, lon)
	a.metrics.Observe("geocode", err)
	if err != nil {
		return nil, err
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if startDate.IsZero() {
		startDate = midnightToday()
	}

	board := model.NewBoard(sessionID)
	board.City = city
	board.Latitude = lat
	board.Longitude = lon
	if sort != "" {
		board.Sort = sort
	}
	board.StartDate = startDate

	a.mu.Lock()
	a.boards[sessionID] = board
	gen := board.Generation
	for _, cat := range model.Categories() {
		beginLoad(board, cat)
	}
	a.mu.Unlock()

	results := a.searchAllCategories(ctx, board.City, board.Sort, board.StartDate)

	failures := 0
	a.mu.Lock()
	for _, r := range results {
		if r.err != nil {
			slog.Error("category search failed", "category", r.category, "error", r.err)
			applyFailure(board, r.category, gen)
			failures++
			continue
		}
		applySearch(board, r.category, gen, r.result, false)
	}
	a.mu.Unlock()

	if failures == len(results) {
		a.loadTrending(ctx, board, gen, lat, lon)
	} else {
		a.attachNews(ctx, board, gen)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return snapshot(board), nil
}

// LoadMore fetches the next page for one category. Once the consumed page
// count reaches the last known total it is a no-op: no request is issued.
func (a *Aggregator) LoadMore(ctx context.Context, sessionID string, cat model.Category) (*model.Board, error) {
	a.mu.Lock()
	board, ok := a.boards[sessionID]
	if !ok {
		a.mu.Unlock()
		return nil, ErrUnknownSession
	}
	gen := board.Generation
	page, ok := nextPage(board, cat)
	if !ok {
		defer a.mu.Unlock()
		return snapshot(board), nil
	}
	city, sort, startDate := board.City, board.Sort, board.StartDate
	beginLoad(board, cat)
	a.mu.Unlock()

	res, err := a.events.Search(ctx, ticketmaster.SearchParams{
		Keyword:   string(cat),
		City:      city,
		Sort:      sort,
		Page:      page,
		StartDate: startDate,
	})
	a.metrics.Observe("ticketmaster", err)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		// Prior state is kept on a load-more failure.
		if gen == board.Generation {
			board.Categories[cat].Phase = model.PhaseLoaded
		}
		return nil, fmt.Errorf("load more %s: %w", cat, err)
	}
	applySearch(board, cat, gen, res, true)
	return snapshot(board), nil
}

// SetCriteria applies a sort or date change: every category resets to page
// zero before all three searches are re-issued under a new generation.
func (a *Aggregator) SetCriteria(ctx context.Context, sessionID, sort string, startDate time.Time) (*model.Board, error) {
	a.mu.Lock()
	board, ok := a.boards[sessionID]
	if !ok {
		a.mu.Unlock()
		return nil, ErrUnknownSession
	}
	resetCriteria(board, sort, startDate)
	gen := board.Generation
	city, effSort, effDate := board.City, board.Sort, board.StartDate
	for _, cat := range model.Categories() {
		beginLoad(board, cat)
	}
	a.mu.Unlock()

	results := a.searchAllCategories(ctx, city, effSort, effDate)

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range results {
		if r.err != nil {
			slog.Error("category search failed", "category", r.category, "error", r.err)
			applyFailure(board, r.category, gen)
			continue
		}
		applySearch(board, r.category, gen, r.result, false)
	}
	return snapshot(board), nil
}

// Board returns a snapshot of the session's board.
func (a *Aggregator) Board(sessionID string) (*model.Board, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	board, ok := a.boards[sessionID]
	if !ok {
		return nil, ErrUnknownSession
	}
	return snapshot(board), nil
}

// EventDetails serves the enriched detail view for one event. Cached
// details are returned without touching the network or the rate limiter; a
// miss inside the rate window is skipped with ErrRateLimited. On a miss the
// event record, its images and the artist enrichment are fetched as one
// concurrent join; the enrichment branches degrade instead of failing it.
func (a *Aggregator) EventDetails(ctx context.Context, sessionID, eventID, artistName string, tags []string) (*model.EnrichedEvent, error) {
	if cached, ok, err := a.details.Get(ctx, sessionID, eventID); err != nil {
		slog.Error("detail cache read failed", "event_id", eventID, "error", err)
	} else if ok {
		a.metrics.DetailCacheHits.Inc()
		return cached, nil
	}

	if !a.limiter.Allow(sessionID) {
		a.metrics.RateLimited.Inc()
		slog.Warn("detail fetch inside rate window, skipping", "session", sessionID, "event_id", eventID)
		return nil, ErrRateLimited
	}

	detail := &model.EnrichedEvent{Videos: []youtube.Video{}, PhotoURLs: []string{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ev, err := a.events.EventByID(gctx, eventID)
		a.metrics.Observe("ticketmaster", err)
		if err != nil {
			return err
		}
		detail.Event = ev
		return nil
	})
	g.Go(func() error {
		images, err := a.events.EventImages(gctx, eventID)
		a.metrics.Observe("ticketmaster", err)
		if err != nil {
			return err
		}
		detail.Images = images
		return nil
	})
	g.Go(func() error {
		videos, err := a.videos.Search(gctx, artistName, tags)
		a.metrics.Observe("youtube", err)
		if err != nil {
			slog.Error("artist video fetch degraded", "artist", artistName, "error", err)
			detail.VideosDegraded = err.Error()
			return nil
		}
		detail.Videos = videos
		return nil
	})
	g.Go(func() error {
		photos, err := a.photos.Search(gctx, artistName, tags)
		a.metrics.Observe("flickr", err)
		if err != nil {
			slog.Error("artist photo fetch degraded", "artist", artistName, "error", err)
			detail.PhotosDegraded = err.Error()
			return nil
		}
		detail.PhotoURLs = photos
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("event details %s: %w", eventID, err)
	}

	images := detail.Images
	if len(images) == 0 && detail.Event != nil {
		images = detail.Event.Images
	}
	if best, ok := ticketmaster.BestImage(images); ok {
		detail.BestImage = &best
		detail.ImageCandidates = ticketmaster.BestImages(images)
	}

	if err := a.details.Set(ctx, sessionID, eventID, detail); err != nil {
		slog.Error("detail cache write failed", "event_id", eventID, "error", err)
	}
	return detail, nil
}

func (a *Aggregator) searchAllCategories(ctx context.Context, city, sort string, startDate time.Time) []categoryResult {
	categories := model.Categories()
	results := make([]categoryResult, len(categories))

	var wg sync.WaitGroup
	for i, cat := range categories {
		i, cat := i, cat
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := a.events.Search(ctx, ticketmaster.SearchParams{
				Keyword:   string(cat),
				City:      city,
				Sort:      sort,
				Page:      0,
				StartDate: startDate,
			})
			a.metrics.Observe("ticketmaster", err)
			results[i] = categoryResult{category: cat, result: res, err: err}
		}()
	}
	wg.Wait()
	return results
}

func (a *Aggregator) loadTrending(ctx context.Context, board *model.Board, gen uint64, lat, lon float64) {
	events, err := a.events.Trending(ctx, lat, lon)
	a.metrics.Observe("ticketmaster", err)
	if err != nil {
		slog.Error("trending fallback failed", "error", err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	applyTrending(board, gen, events)
}

// attachNews matches each loaded event's keyword tokens against that
// category's feeds and appends the hits in category presentation order.
// Matches are accumulated per event, neither deduplicated nor capped. Feed
// failures only log.
func (a *Aggregator) attachNews(ctx context.Context, board *model.Board, gen uint64) {
	a.mu.Lock()
	names := make(map[model.Category][]string)
	for cat, st := range board.Categories {
		for _, ev := range st.Events {
			names[cat] = append(names[cat], ev.Name)
		}
	}
	a.mu.Unlock()

	for _, cat := range model.Categories() {
		eventNames := names[cat]
		if len(eventNames) == 0 {
			continue
		}
		batches, err := a.news.FetchCategory(ctx, string(cat))
		a.metrics.Observe("rssfeed", err)
		if err != nil {
			slog.Error("news fetch failed", "category", cat, "error", err)
			continue
		}

		var matched []rssfeed.NewsItem
		for _, name := range eventNames {
			keywords := ExtractKeywords(name)
			if len(keywords) == 0 {
				continue
			}
			for _, items := range batches {
				matched = append(matched, MatchNews(items, keywords)...)
			}
		}

		a.mu.Lock()
		if gen == board.Generation {
			board.News = append(board.News, matched...)
		}
		a.mu.Unlock()
	}
}

func midnightToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
