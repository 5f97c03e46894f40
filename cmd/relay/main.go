package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	sloggin "github.com/samber/slog-gin"

	"github.com/dbkarmindj67/TicketsandGear/internal/handler"
	"github.com/dbkarmindj67/TicketsandGear/pkg/rssfeed"
)

func main() {

	godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	feeds := rssfeed.NewClient(os.Getenv("RSS_PROXY_URL"), rssfeed.DefaultFeeds())
	relayHandler := handler.NewRelayHandler("", os.Getenv("TICKETMASTER_API_KEY"), feeds)

	r := gin.New()
	r.Use(sloggin.New(logger), gin.Recovery())
	r.Use(cors.Default())

	r.GET("/events", relayHandler.RelayEvents)
	r.GET("/rss", relayHandler.RelayRSS)

	port := os.Getenv("RELAY_PORT")
	if port == "" {
		port = "3000"
	}

	err := r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting relay: %v", err)
	}
}
