package output

import (
	"context"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
)

// Publisher sends events to the broadcast channel. Message references are
// opaque to the application.
type Publisher interface {
	Publish(ctx context.Context, event *entities.Event) (messageRef string, err error)
	Unpublish(ctx context.Context, messageRef string) error
}

// RSVPDisplay rewrites the RSVP controls of a published event message.
type RSVPDisplay interface {
	UpdateRSVP(ctx context.Context, messageRef string, eventID int64, counts domain.Counts) error
}
