package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"

	"rsvpbot/internal/domain/intent"
	"rsvpbot/internal/ports/input"
)

func (h *Handler) handleMessage(ctx context.Context, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	// In guild channels only the user's own creation conversation is read.
	// DMs always go through so a session lost in a restart can be reported.
	dm := m.GuildID == ""
	if !dm && !h.creation.Active(m.Author.ID, m.ChannelID) {
		return
	}

	in := intent.ParseText(m.Content)
	if ref := imageAttachment(m.Attachments); ref != "" {
		in = intent.Image{Ref: ref}
	} else if text, ok := in.(intent.Text); ok && strings.TrimSpace(text.Value) == "" {
		return
	}

	actor := input.Actor{
		UserID:    m.Author.ID,
		Username:  resolveDisplayName(m.Member, m.Author),
		ChannelID: m.ChannelID,
	}
	r := &channelResponder{api: h.api, channelID: m.ChannelID, reference: m.Reference()}
	// Messages carry no client locale; "" selects the default language.
	h.dispatch(ctx, actor, "", in, r)
}

// imageAttachment returns the URL of the first image attached to a message.
func imageAttachment(attachments []*discordgo.MessageAttachment) string {
	for _, a := range attachments {
		if a != nil && strings.HasPrefix(a.ContentType, "image/") {
			return a.URL
		}
	}
	return ""
}
