package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"rsvpbot/internal/domain"
	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/domain/intent"
	"rsvpbot/internal/ports/input"
	"rsvpbot/internal/ports/output"
)

const (
	embedColor = 0x5865F2

	// Discord limits.
	maxButtonLabel   = 80
	maxButtonsPerRow = 5
	maxRows          = 5
)

// EventEmbed is the broadcast announcement of an event.
func EventEmbed(tr output.T, locale string, event *entities.Event) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       EscapeMarkdown(event.Title),
		Description: EscapeMarkdown(event.Description),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: tr.T(locale, "embed.date", nil), Value: event.Date, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: tr.T(locale, "embed.footer", nil)},
	}
	if event.HasImage() {
		embed.Image = &discordgo.MessageEmbedImage{URL: event.ImageRef}
	}
	return embed
}

// RSVPComponents is the two-button answer control with current counts.
func RSVPComponents(tr output.T, locale string, eventID int64, counts domain.Counts) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    tr.T(locale, "button.joining", map[string]any{"Count": counts.Joining}),
				Style:    discordgo.SuccessButton,
				CustomID: intent.JoinToken(eventID),
			},
			discordgo.Button{
				Label:    tr.T(locale, "button.declining", map[string]any{"Count": counts.Declining}),
				Style:    discordgo.DangerButton,
				CustomID: intent.DeclineToken(eventID),
			},
		}},
	}
}

// MenuComponents is the start menu; creation is offered to allowed users only.
func MenuComponents(tr output.T, locale string, canCreate bool) []discordgo.MessageComponent {
	buttons := []discordgo.MessageComponent{}
	if canCreate {
		buttons = append(buttons, discordgo.Button{
			Label:    tr.T(locale, "button.create", nil),
			Style:    discordgo.PrimaryButton,
			CustomID: intent.TokenMenuCreate,
		})
	}
	buttons = append(buttons, discordgo.Button{
		Label:    tr.T(locale, "button.events", nil),
		Style:    discordgo.SecondaryButton,
		CustomID: intent.TokenMenuList,
	})
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

// EventListComponents renders one view button per event, as many as fit in
// a message.
func EventListComponents(events []entities.Event) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var row []discordgo.MessageComponent
	for i, e := range events {
		if i == maxRows*maxButtonsPerRow {
			break
		}
		row = append(row, discordgo.Button{
			Label:    Truncate(fmt.Sprintf("%s · %s", e.Date, e.Title), maxButtonLabel),
			Style:    discordgo.SecondaryButton,
			CustomID: intent.ViewToken(e.ID),
		})
		if len(row) == maxButtonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: row})
	}
	return rows
}

// EventViewEmbed shows an event with the users who joined it.
func EventViewEmbed(tr output.T, locale string, view *input.EventView) *discordgo.MessageEmbed {
	embed := EventEmbed(tr, locale, &view.Event)
	embed.Footer = nil

	joining := tr.T(locale, "event.no_participants", nil)
	if len(view.Joining) > 0 {
		names := make([]string, len(view.Joining))
		for i, name := range view.Joining {
			names[i] = "• " + EscapeMarkdown(name)
		}
		joining = Truncate(strings.Join(names, "\n"), 1024)
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:  tr.T(locale, "event.joining", map[string]any{"Count": len(view.Joining)}),
		Value: joining,
	})
	return embed
}

// EventViewComponents holds the delete button for users allowed to delete.
func EventViewComponents(tr output.T, locale string, view *input.EventView) []discordgo.MessageComponent {
	if !view.CanDelete {
		return nil
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    tr.T(locale, "button.delete", nil),
				Style:    discordgo.DangerButton,
				CustomID: intent.DeleteToken(view.Event.ID),
			},
		}},
	}
}
