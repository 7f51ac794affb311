package discord

import (
	"github.com/bwmarrin/discordgo"

	"rsvpbot/internal/ports/output"
)

const (
	ModalCustomTime = "custom_time_modal"
	InputCustomTime = "custom_time_value"
)

// CustomTimeModal asks for a free-form HH:MM start time.
func CustomTimeModal(tr output.T, locale string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: ModalCustomTime,
		Title:    Truncate(tr.T(locale, "button.custom_time", nil), 45),
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    InputCustomTime,
					Label:       "HH:MM",
					Style:       discordgo.TextInputShort,
					Placeholder: "18:45",
					Required:    true,
					MinLength:   3,
					MaxLength:   5,
				},
			}},
		},
	}
}

// ExtractModalValue returns the value of the text input customID.
func ExtractModalValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
