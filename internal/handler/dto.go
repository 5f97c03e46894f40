package handler

import (
	"time"

	"github.com/dbkarmindj67/TicketsandGear/internal/model"
	"github.com/dbkarmindj67/TicketsandGear/pkg/rssfeed"
	"github.com/dbkarmindj67/TicketsandGear/pkg/ticketmaster"
	"github.com/dbkarmindj67/TicketsandGear/pkg/youtube"
)

type EventResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	URL       string  `json:"url"`
	Segment   string  `json:"segment,omitempty"`
	Genre     string  `json:"genre,omitempty"`
	LocalDate string  `json:"local_date,omitempty"`
	LocalTime string  `json:"local_time,omitempty"`
	Timezone  string  `json:"timezone,omitempty"`
	Status    string  `json:"status,omitempty"`
	Venue     string  `json:"venue,omitempty"`
	City      string  `json:"city,omitempty"`
	PriceMin  float64 `json:"price_min,omitempty"`
	PriceMax  float64 `json:"price_max,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type CategoryResponse struct {
	Phase      string                `json:"phase"`
	Events     []EventResponse       `json:"events"`
	Pagination model.PaginationState `json:"pagination"`
}

type BoardResponse struct {
	SessionID  string                      `json:"session_id"`
	City       string                      `json:"city"`
	Sort       string                      `json:"sort"`
	StartDate  string                      `json:"start_date"`
	Trending   bool                        `json:"trending"`
	Categories map[string]CategoryResponse `json:"categories"`
	News       []rssfeed.NewsItem          `json:"news"`
}

type SearchResponse struct {
	Events []EventResponse   `json:"events"`
	Page   ticketmaster.Page `json:"page"`
}

type VideoResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Thumbnail string `json:"thumbnail,omitempty"`
	EmbedURL  string `json:"embed_url"`
}

type DetailResponse struct {
	Event           EventResponse        `json:"event"`
	Images          []ticketmaster.Image `json:"images"`
	BestImage       *ticketmaster.Image  `json:"best_image,omitempty"`
	ImageCandidates []ticketmaster.Image `json:"image_candidates,omitempty"`
	Videos          []VideoResponse      `json:"videos"`
	VideosDegraded  string               `json:"videos_degraded,omitempty"`
	PhotoURLs       []string             `json:"photo_urls"`
	PhotosDegraded  string               `json:"photos_degraded,omitempty"`
}

func toEventResponse(ev ticketmaster.Event) EventResponse {
	res := EventResponse{
		ID:        ev.ID,
		Name:      ev.Name,
		URL:       ev.URL,
		LocalDate: ev.Dates.Start.LocalDate,
		LocalTime: ev.Dates.Start.LocalTime,
		Timezone:  ev.Dates.Timezone,
		Status:    ev.Dates.Status.Code,
	}
	if len(ev.Classifications) > 0 {
		res.Segment = ev.Classifications[0].Segment.Name
		res.Genre = ev.Classifications[0].Genre.Name
	}
	if ev.Embedded != nil && len(ev.Embedded.Venues) > 0 {
		res.Venue = ev.Embedded.Venues[0].Name
		res.City = ev.Embedded.Venues[0].City.Name
	}
	if len(ev.PriceRanges) > 0 {
		res.PriceMin = ev.PriceRanges[0].Min
		res.PriceMax = ev.PriceRanges[0].Max
		res.Currency = ev.PriceRanges[0].Currency
	}
	if best, ok := ticketmaster.BestImage(ev.Images); ok {
		res.ImageURL = best.URL
	}
	return res
}

func toEventResponses(events []ticketmaster.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventResponse(ev))
	}
	return out
}

func toBoardResponse(board *model.Board) BoardResponse {
	categories := make(map[string]CategoryResponse, len(board.Categories))
	for cat, st := range board.Categories {
		categories[string(cat)] = CategoryResponse{
			Phase:      string(st.Phase),
			Events:     toEventResponses(st.Events),
			Pagination: st.Pagination,
		}
	}
	return BoardResponse{
		SessionID:  board.SessionID,
		City:       board.City,
		Sort:       board.Sort,
		StartDate:  board.StartDate.Format(time.RFC3339),
		Trending:   board.Trending,
		Categories: categories,
		News:       board.News,
	}
}

func toDetailResponse(detail *model.EnrichedEvent) DetailResponse {
	res := DetailResponse{
		Images:          detail.Images,
		BestImage:       detail.BestImage,
		ImageCandidates: detail.ImageCandidates,
		Videos:          make([]VideoResponse, 0, len(detail.Videos)),
		VideosDegraded:  detail.VideosDegraded,
		PhotoURLs:       detail.PhotoURLs,
		PhotosDegraded:  detail.PhotosDegraded,
	}
	if detail.Event != nil {
		res.Event = toEventResponse(*detail.Event)
	}
	for _, v := range detail.Videos {
		res.Videos = append(res.Videos, VideoResponse{
			ID:        v.ID,
			Title:     v.Title,
			Channel:   v.Channel,
			Thumbnail: v.Thumbnail,
			EmbedURL:  youtube.EmbedURL(v.ID),
		})
	}
	return res
}
