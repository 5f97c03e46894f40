package model

import (
	"github.com/dbkarmindj67/TicketsandGear/pkg/ticketmaster"
	"github.com/dbkarmindj67/TicketsandGear/pkg/youtube"
)

// EnrichedEvent is the detail view of one event: the base record joined with
// its image list and the best-effort artist enrichment. Degraded markers
// distinguish "the enrichment call failed" from "legitimately no results".
type EnrichedEvent struct {
	Event           *ticketmaster.Event  `json:"event"`
	Images          []ticketmaster.Image `json:"images"`
	BestImage       *ticketmaster.Image  `json:"best_image,omitempty"`
	ImageCandidates []ticketmaster.Image `json:"image_candidates,omitempty"`
	Videos          []youtube.Video      `json:"videos"`
	VideosDegraded  string               `json:"videos_degraded,omitempty"`
	PhotoURLs       []string             `json:"photo_urls"`
	PhotosDegraded  string               `json:"photos_degraded,omitempty"`
}
