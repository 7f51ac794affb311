package domain

import (
	"fmt"
	"time"
)

const (
	MinCalendarYear = 1970
	MaxCalendarYear = 9999
)

// NavigateMonth moves one month back ("prev") or forward ("next") from
// year/month, wrapping the year at month boundaries.
func NavigateMonth(direction string, year, month int) (int, int, error) {
	if month < 1 || month > 12 {
		return 0, 0, Invalid("calendar_month", map[string]any{"Month": month})
	}
	switch direction {
	case "prev":
		month--
		if month == 0 {
			month = 12
			year--
		}
	case "next":
		month++
		if month == 13 {
			month = 1
			year++
		}
	default:
		return 0, 0, Invalid("calendar_direction", map[string]any{"Direction": direction})
	}
	if year < MinCalendarYear || year > MaxCalendarYear {
		return 0, 0, Invalid("calendar_year", map[string]any{"Year": year})
	}
	return year, month, nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// TimeSlots returns the preset half-hour slots offered by the time picker,
// from 06:00 through 23:30 and then 00:00 through 03:30.
func TimeSlots() []string {
	slots := make([]string, 0, 44)
	for h := 6; h < 24; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	for h := 0; h < 4; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return slots
}

// IsTimeSlot reports whether hhmm is one of TimeSlots.
func IsTimeSlot(hhmm string) bool {
	for _, s := range TimeSlots() {
		if s == hhmm {
			return true
		}
	}
	return false
}
