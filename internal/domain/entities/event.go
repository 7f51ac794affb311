package entities

import "time"

// Event is a published (or about to be published) occurrence users RSVP to.
type Event struct {
	ID          int64
	Title       string
	Description string
	Date        string    // normalized "02.01.2006 15:04" in the reference timezone
	StartsAt    time.Time // instant of Date, used for ordering
	ImageRef    string    // empty = no image
	MessageRef  string    // empty until the broadcast message is sent
	CreatedAt   time.Time
}

func (e *Event) IsPublished() bool {
	return e.MessageRef != ""
}

func (e *Event) HasImage() bool {
	return e.ImageRef != ""
}

// EventDraft carries the fields collected by a creation session.
type EventDraft struct {
	Title       string
	Description string
	Date        string
	StartsAt    time.Time
	ImageRef    string
}
