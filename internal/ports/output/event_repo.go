package output

import (
	"context"

	"rsvpbot/internal/domain/entities"
)

type EventRepository interface {
	// Create fails with domain.ErrDuplicateEvent when (title, date) exists.
	Create(ctx context.Context, draft entities.EventDraft) (*entities.Event, error)
	FindByID(ctx context.Context, id int64) (*entities.Event, error)
	// List returns events ordered by start instant.
	List(ctx context.Context) ([]entities.Event, error)
	AttachMessage(ctx context.Context, id int64, messageRef string) error
	// Delete removes the event and its participants in one transaction.
	Delete(ctx context.Context, id int64) error
}
