package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	sloggin "github.com/samber/slog-gin"

	"github.com/dbkarmindj67/TicketsandGear/internal/aggregator"
	"github.com/dbkarmindj67/TicketsandGear/internal/cache"
	"github.com/dbkarmindj67/TicketsandGear/internal/handler"
	"github.com/dbkarmindj67/TicketsandGear/internal/metrics"
	"github.com/dbkarmindj67/TicketsandGear/pkg/flickr"
	"github.com/dbkarmindj67/TicketsandGear/pkg/geocode"
	"github.com/dbkarmindj67/TicketsandGear/pkg/rssfeed"
	"github.com/dbkarmindj67/TicketsandGear/pkg/ticketmaster"
	"github.com/dbkarmindj67/TicketsandGear/pkg/youtube"
)

func main() {

	godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	events := ticketmaster.NewClient(os.Getenv("TICKETMASTER_API_KEY"))
	geo := geocode.NewClient(os.Getenv("GOOGLE_API_KEY"))
	videos := youtube.NewClient(os.Getenv("YOUTUBE_API_KEY"))
	photos := flickr.NewClient(os.Getenv("FLICKR_API_KEY"))

	feeds, err := loadFeeds()
	if err != nil {
		log.Fatalf("error loading feed config: %v", err)
	}
	news := rssfeed.NewClient(os.Getenv("RSS_PROXY_URL"), feeds)

	details, cleanup := newDetailStore()
	defer cleanup()

	m := metrics.New()

	agg := aggregator.New(aggregator.Config{
		Events:       events,
		Geo:          geo,
		Videos:       videos,
		Photos:       photos,
		News:         news,
		Details:      details,
		Metrics:      m,
		DetailWindow: detailWindow(),
	})

	discoveryHandler := handler.NewDiscoveryHandler(agg)
	searchHandler := handler.NewSearchHandler(events, geo, news)

	r := gin.New()
	r.Use(sloggin.New(logger), gin.Recovery())

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/api/city", searchHandler.GetCity)
	r.GET("/api/board", discoveryHandler.GetBoard)
	r.GET("/api/board/more", discoveryHandler.LoadMore)
	r.GET("/api/board/criteria", discoveryHandler.SetCriteria)
	r.GET("/api/events", searchHandler.SearchEvents)
	r.GET("/api/events/:id", discoveryHandler.GetEventDetails)
	r.GET("/api/news", searchHandler.GetNewsCategories)
	r.GET("/api/news/:category", searchHandler.GetNews)
	r.GET("/health", searchHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func loadFeeds() (map[string][]string, error) {
	if path := os.Getenv("FEEDS_CONFIG"); path != "" {
		return rssfeed.LoadFeeds(path)
	}
	return rssfeed.DefaultFeeds(), nil
}

func newDetailStore() (cache.DetailStore, func()) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return cache.NewMemoryStore(), func() {}
	}

	store, err := cache.NewRedisStore(redisURL)
	if err != nil {
		log.Fatalf("error connecting to redis: %v", err)
	}
	return store, func() { store.Close() }
}

func detailWindow() time.Duration {
	raw := os.Getenv("DETAIL_FETCH_INTERVAL_MS")
	if raw == "" {
		return aggregator.DefaultDetailWindow
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		slog.Warn("invalid DETAIL_FETCH_INTERVAL_MS, using default", "value", raw)
		return aggregator.DefaultDetailWindow
	}
	return time.Duration(ms) * time.Millisecond
}
