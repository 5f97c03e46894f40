package cache

import (
	"context"

	"github.com/dbkarmindj67/TicketsandGear/internal/model"
)

// DetailStore holds enriched event details per session. Entries live for
// the remainder of the session and are never invalidated.
type DetailStore interface {
	Get(ctx context.Context, sessionID, eventID string) (*model.EnrichedEvent, bool, error)
	Set(ctx context.Context, sessionID, eventID string, detail *model.EnrichedEvent) error
}
