package input

import (
	"context"

	"rsvpbot/internal/domain/entities"
)

// EventView is an event with its joining participants as shown on request.
type EventView struct {
	Event     entities.Event
	Joining   []string
	CanDelete bool
}

type EventUseCase interface {
	Publish(ctx context.Context, draft entities.EventDraft) (*entities.Event, error)
	ListEvents(ctx context.Context) ([]entities.Event, error)
	ViewEvent(ctx context.Context, actorID string, id int64) (*EventView, error)
	DeleteEvent(ctx context.Context, actorID string, id int64) error
}
