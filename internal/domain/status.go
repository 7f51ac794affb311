package domain

// Status is a participant's RSVP answer for an event.
type Status string

const (
	StatusJoining   Status = "joining"
	StatusDeclining Status = "declining"
)

func (s Status) Valid() bool {
	return s == StatusJoining || s == StatusDeclining
}

// Counts is the aggregate of current RSVP answers for one event.
type Counts struct {
	Joining   int
	Declining int
}
