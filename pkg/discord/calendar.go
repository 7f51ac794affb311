package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/intent"
	"rsvpbot/internal/ports/output"
)

const (
	daysPerMenu = 25

	selectDaysFirst   = "date_select_first"
	selectDaysRest    = "date_select_rest"
	selectTimeDay     = "time_select_day"
	selectTimeEvening = "time_select_evening"
	daytimeSlotCount  = 24 // 06:00 through 17:30
)

// CalendarComponents renders a month as a navigation row and up to two day
// menus, since a select menu holds at most 25 options.
func CalendarComponents(tr output.T, locale string, year, month int) []discordgo.MessageComponent {
	label := fmt.Sprintf("%s %d", tr.T(locale, fmt.Sprintf("month.%d", month), nil), year)
	nav := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: "◀", Style: discordgo.SecondaryButton, CustomID: intent.CalendarToken("prev", year, month)},
		discordgo.Button{Label: label, Style: discordgo.SecondaryButton, CustomID: intent.TokenIgnore, Disabled: true},
		discordgo.Button{Label: "▶", Style: discordgo.SecondaryButton, CustomID: intent.CalendarToken("next", year, month)},
		discordgo.Button{Label: tr.T(locale, "button.cancel", nil), Style: discordgo.DangerButton, CustomID: intent.TokenCancelCalendar},
	}}

	days := domain.DaysIn(year, month)
	first := min(days, daysPerMenu)
	rows := []discordgo.MessageComponent{
		nav,
		dayMenu(selectDaysFirst, tr.T(locale, "calendar.days_first", nil), year, month, 1, first),
	}
	if days > daysPerMenu {
		placeholder := tr.T(locale, "calendar.days_rest", map[string]any{"Last": days})
		rows = append(rows, dayMenu(selectDaysRest, placeholder, year, month, daysPerMenu+1, days))
	}
	return rows
}

func dayMenu(customID, placeholder string, year, month, from, to int) discordgo.ActionsRow {
	options := make([]discordgo.SelectMenuOption, 0, to-from+1)
	for d := from; d <= to; d++ {
		options = append(options, discordgo.SelectMenuOption{
			Label: fmt.Sprintf("%02d.%02d.%d", d, month, year),
			Value: intent.DateToken(year, month, d),
		})
	}
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    customID,
			Placeholder: placeholder,
			Options:     options,
		},
	}}
}

// TimePickerComponents offers the preset half-hour slots in two menus plus
// free-form entry and cancel.
func TimePickerComponents(tr output.T, locale string) []discordgo.MessageComponent {
	slots := domain.TimeSlots()
	return []discordgo.MessageComponent{
		timeMenu(selectTimeDay, tr.T(locale, "time.day_slots", nil), slots[:daytimeSlotCount]),
		timeMenu(selectTimeEvening, tr.T(locale, "time.evening_slots", nil), slots[daytimeSlotCount:]),
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: tr.T(locale, "button.custom_time", nil), Style: discordgo.PrimaryButton, CustomID: intent.TokenCustomTime},
			discordgo.Button{Label: tr.T(locale, "button.cancel", nil), Style: discordgo.DangerButton, CustomID: intent.TokenCancelTime},
		}},
	}
}

func timeMenu(customID, placeholder string, slots []string) discordgo.ActionsRow {
	options := make([]discordgo.SelectMenuOption, len(slots))
	for i, s := range slots {
		options[i] = discordgo.SelectMenuOption{Label: s, Value: intent.TimeToken(s)}
	}
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    customID,
			Placeholder: placeholder,
			Options:     options,
		},
	}}
}

// CancelComponents is a single cancel button emitting token.
func CancelComponents(tr output.T, locale, token string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: tr.T(locale, "button.cancel", nil), Style: discordgo.DangerButton, CustomID: token},
		}},
	}
}
