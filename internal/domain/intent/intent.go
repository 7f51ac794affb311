// Package intent turns inbound payloads (callback tokens and text messages)
// into a closed set of typed intents. Callback tokens are '_'-delimited, e.g.
// "calendar_next_2026_10", "date_2026_10_16", "time_18:30", "join_42".
package intent

import (
	"fmt"
	"strconv"
	"strings"

	"rsvpbot/internal/domain"
)

// Intent is one of the types declared in this package.
type Intent interface {
	isIntent()
}

type (
	// Menu asks for the start menu.
	Menu struct{}
	// StartCreation begins a new creation session.
	StartCreation struct{}
	// ListEvents asks for the list of events.
	ListEvents struct{}
	// Cancel aborts the current creation session.
	Cancel struct{}
	// Skip skips the optional image step.
	Skip struct{}
	// Text is free-form text typed by the user.
	Text struct{ Value string }
	// Image is an uploaded picture.
	Image struct{ Ref string }
	// CalendarNav moves the date picker one month from Year/Month.
	CalendarNav struct {
		Direction string // "prev" or "next"
		Year      int
		Month     int
	}
	// PickDate selects a day in the date picker.
	PickDate struct{ Year, Month, Day int }
	// PickTime selects a preset time slot.
	PickTime struct{ Clock string }
	// CustomTime asks for free-form time entry.
	CustomTime struct{}
	// Join and Decline are RSVP button presses.
	Join    struct{ EventID int64 }
	Decline struct{ EventID int64 }
	// View shows an event's details.
	View struct{ EventID int64 }
	// Delete removes an event.
	Delete struct{ EventID int64 }
	// Ignore is a press on a decorative control.
	Ignore struct{}
)

func (Menu) isIntent()          {}
func (StartCreation) isIntent() {}
func (ListEvents) isIntent()    {}
func (Cancel) isIntent()        {}
func (Skip) isIntent()          {}
func (Text) isIntent()          {}
func (Image) isIntent()         {}
func (CalendarNav) isIntent()   {}
func (PickDate) isIntent()      {}
func (PickTime) isIntent()      {}
func (CustomTime) isIntent()    {}
func (Join) isIntent()          {}
func (Decline) isIntent()       {}
func (View) isIntent()          {}
func (Delete) isIntent()        {}
func (Ignore) isIntent()        {}

// Token builders used when rendering controls.
func CalendarToken(direction string, year, month int) string {
	return fmt.Sprintf("calendar_%s_%d_%d", direction, year, month)
}

func DateToken(year, month, day int) string {
	return fmt.Sprintf("date_%d_%d_%d", year, month, day)
}

func TimeToken(clock string) string { return "time_" + clock }
func JoinToken(id int64) string     { return fmt.Sprintf("join_%d", id) }
func DeclineToken(id int64) string  { return fmt.Sprintf("decline_%d", id) }
func ViewToken(id int64) string     { return fmt.Sprintf("view_%d", id) }
func DeleteToken(id int64) string   { return fmt.Sprintf("delete_%d", id) }

const (
	TokenCustomTime     = "custom_time"
	TokenCancelCalendar = "cancel_calendar"
	TokenCancelTime     = "cancel_time"
	TokenCancelImage    = "cancel_image"
	TokenMenuCreate     = "menu_create"
	TokenMenuList       = "menu_list"
	TokenIgnore         = "ignore"
)

// ParseCallback decodes a button or select-menu token.
func ParseCallback(token string) (Intent, error) {
	switch token {
	case TokenCustomTime:
		return CustomTime{}, nil
	case TokenCancelCalendar, TokenCancelTime, TokenCancelImage:
		return Cancel{}, nil
	case TokenMenuCreate:
		return StartCreation{}, nil
	case TokenMenuList:
		return ListEvents{}, nil
	case TokenIgnore:
		return Ignore{}, nil
	}

	parts := strings.Split(token, "_")
	switch parts[0] {
	case "calendar":
		if len(parts) != 4 || (parts[1] != "prev" && parts[1] != "next") {
			return nil, malformed(token)
		}
		nums, err := atois(parts[2:])
		if err != nil {
			return nil, malformed(token)
		}
		return CalendarNav{Direction: parts[1], Year: nums[0], Month: nums[1]}, nil
	case "date":
		if len(parts) != 4 {
			return nil, malformed(token)
		}
		nums, err := atois(parts[1:])
		if err != nil {
			return nil, malformed(token)
		}
		return PickDate{Year: nums[0], Month: nums[1], Day: nums[2]}, nil
	case "time":
		if len(parts) != 2 || parts[1] == "" {
			return nil, malformed(token)
		}
		return PickTime{Clock: parts[1]}, nil
	case "join", "decline", "view", "delete":
		if len(parts) != 2 {
			return nil, malformed(token)
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || id <= 0 {
			return nil, malformed(token)
		}
		switch parts[0] {
		case "join":
			return Join{EventID: id}, nil
		case "decline":
			return Decline{EventID: id}, nil
		case "view":
			return View{EventID: id}, nil
		default:
			return Delete{EventID: id}, nil
		}
	}
	return nil, malformed(token)
}

// ParseText decodes a typed message. Commands are matched case-insensitively;
// anything else is Text.
func ParseText(text string) Intent {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "/start":
		return Menu{}
	case "/event":
		return StartCreation{}
	case "/events":
		return ListEvents{}
	case "/cancel":
		return Cancel{}
	case "/skip":
		return Skip{}
	}
	return Text{Value: text}
}

func atois(ss []string) ([]int, error) {
	out := make([]int, len(ss))
	for i, s := range ss {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func malformed(token string) error {
	return domain.Invalid("malformed_token", map[string]any{"Token": token})
}
