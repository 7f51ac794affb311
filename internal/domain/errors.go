package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDuplicateEvent      = errors.New("event with this title and date already exists")
	ErrEventNotFound       = errors.New("event not found")
	ErrPublishFailure      = errors.New("failed to publish event to the broadcast channel")
	ErrDisplayUpdate       = errors.New("failed to update the published event message")
	ErrAccessDenied        = errors.New("access denied")
	ErrNoActiveSession     = errors.New("no active creation session")
	ErrParticipantNotFound = errors.New("participant not found")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrInvalidInput, "invalid_input"},
	{ErrDuplicateEvent, "duplicate_event"},
	{ErrEventNotFound, "event_not_found"},
	{ErrPublishFailure, "publish_failed"},
	{ErrDisplayUpdate, "display_update_failed"},
	{ErrAccessDenied, "access_denied"},
	{ErrNoActiveSession, "no_active_session"},
	{ErrParticipantNotFound, "participant_not_found"},
}

// ValidationError is a user-correctable InvalidInput failure. Key names the
// message to show and Data fills its placeholders.
type ValidationError struct {
	Key  string
	Data map[string]any
}

func (e *ValidationError) Error() string {
	if len(e.Data) == 0 {
		return fmt.Sprintf("invalid input: %s", e.Key)
	}
	return fmt.Sprintf("invalid input: %s %v", e.Key, e.Data)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid builds a ValidationError.
func Invalid(key string, data map[string]any) error {
	return &ValidationError{Key: key, Data: data}
}

// Code returns the stable code of the first domain error found in err's chain,
// or "" for errors that are not domain errors.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
