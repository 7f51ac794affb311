package entities

import "time"

// Step is a state of the event creation conversation.
type Step string

const (
	StepIdle                Step = "idle"
	StepAwaitingTitle       Step = "awaiting_title"
	StepAwaitingDescription Step = "awaiting_description"
	StepAwaitingDate        Step = "awaiting_date"
	StepAwaitingTime        Step = "awaiting_time"
	StepAwaitingCustomTime  Step = "awaiting_custom_time"
	StepAwaitingImage       Step = "awaiting_image"
	StepCompleted           Step = "completed"
	StepCancelled           Step = "cancelled"
)

// Terminal reports whether no session is held in this step.
func (s Step) Terminal() bool {
	return s == StepIdle || s == StepCompleted || s == StepCancelled
}

// CreationSession is the in-memory state of one user's event creation.
type CreationSession struct {
	UserID    string
	ChannelID string
	Step      Step

	Title       string
	Description string
	Date        string // "02.01.2006" until a time is chosen, then "02.01.2006 15:04"
	StartsAt    time.Time
	ImageRef    string

	// CalendarYear/CalendarMonth is the month currently rendered.
	CalendarYear  int
	CalendarMonth int
	// SurfaceRef is the interactive message currently shown to the user.
	SurfaceRef string

	UpdatedAt time.Time
}

func (s *CreationSession) Draft() EventDraft {
	return EventDraft{
		Title:       s.Title,
		Description: s.Description,
		Date:        s.Date,
		StartsAt:    s.StartsAt,
		ImageRef:    s.ImageRef,
	}
}
