package input

import (
	"context"

	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/domain/intent"
)

// Actor identifies who sent an input and where the conversation happens.
type Actor struct {
	UserID    string
	Username  string
	ChannelID string
}

// Render tells the transport what to show after a creation input.
type Render string

const (
	RenderNothing           Render = ""
	RenderTitlePrompt       Render = "title_prompt"
	RenderDescriptionPrompt Render = "description_prompt"
	RenderCalendar          Render = "calendar"
	RenderTimePicker        Render = "time_picker"
	RenderCustomTimePrompt  Render = "custom_time_prompt"
	RenderImagePrompt       Render = "image_prompt"
	RenderPublished         Render = "published"
	RenderCancelled         Render = "cancelled"
	RenderNothingToCancel   Render = "nothing_to_cancel"
	RenderSessionExpired    Render = "session_expired"
)

// Reply is the outcome of one creation input. Err holds a user-facing domain
// error reported alongside (or instead of) the rendering.
type Reply struct {
	Step   entities.Step
	Render Render
	Err    error

	CalendarYear  int
	CalendarMonth int
	Event         *entities.Event
	// ReplacedSurface is the interactive message superseded by this reply,
	// to be removed once the new one is shown.
	ReplacedSurface string
}

type CreationUseCase interface {
	Handle(ctx context.Context, actor Actor, in intent.Intent) (Reply, error)
	// Active reports whether the user has a session bound to channelID.
	Active(userID, channelID string) bool
	// SetSurface records the interactive message currently shown to the user
	// and returns a message that should be removed: the surface it displaces,
	// or messageRef itself when the session has already ended.
	SetSurface(userID, messageRef string) (stale string)
}
