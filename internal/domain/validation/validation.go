// Package validation holds the pure input checks of the event creation
// dialogue. Failures are domain.ValidationError values (InvalidInput).
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"rsvpbot/internal/domain"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000

	// DateLayout is the normalized form events are stored and shown with.
	DateLayout = "02.01.2006 15:04"
	// DayLayout is the normalized form of a date without time of day.
	DayLayout = "02.01.2006"
)

// Day-first layouts; "2" and "1" accept one or two digits when parsing.
var dateLayouts = []string{
	"2.1.2006 15:04",
	"2.1.2006",
}

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ValidateTitle returns the trimmed title.
func ValidateTitle(s string) (string, error) {
	return validateText(s, MaxTitleLength, "title_too_long", "title_empty")
}

// ValidateDescription returns the trimmed description.
func ValidateDescription(s string) (string, error) {
	return validateText(s, MaxDescriptionLength, "description_too_long", "description_empty")
}

func validateText(s string, max int, tooLongKey, emptyKey string) (string, error) {
	if utf8.RuneCountInString(s) > max {
		return "", domain.Invalid(tooLongKey, map[string]any{"Max": max})
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", domain.Invalid(emptyKey, nil)
	}
	return trimmed, nil
}

// ValidateDate parses a day-first date ("DD.MM.YYYY HH:MM", "DD.MM.YYYY";
// "/" and "-" separators are accepted) in ref's location and checks that it is
// strictly after ref. It returns the normalized DateLayout string and the
// parsed instant.
func ValidateDate(s string, ref time.Time) (string, time.Time, error) {
	t, err := ParseDate(s, ref.Location())
	if err != nil {
		return "", time.Time{}, err
	}
	if !t.After(ref) {
		return "", time.Time{}, domain.Invalid("date_in_past", nil)
	}
	return t.Format(DateLayout), t, nil
}

// ParseDate parses a day-first date in loc without the future check.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	normalized := strings.Join(strings.Fields(s), " ")
	normalized = strings.NewReplacer("/", ".", "-", ".").Replace(normalized)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, normalized, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.Invalid("date_format", nil)
}

// ParseClock validates a free-form "HH:MM" time of day and returns it
// zero-padded.
func ParseClock(s string) (string, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", domain.Invalid("time_format", nil)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return "", domain.Invalid("time_format", nil)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// CombineDateTime joins a DayLayout date and an "HH:MM" time into the input
// form accepted by ValidateDate.
func CombineDateTime(day, clock string) string {
	return day + " " + clock
}
