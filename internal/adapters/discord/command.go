package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain/intent"
	"rsvpbot/internal/ports/input"
	"rsvpbot/internal/ports/output"
	dc "rsvpbot/pkg/discord"
)

var commandIntents = map[string]intent.Intent{
	"start":  intent.Menu{},
	"event":  intent.StartCreation{},
	"events": intent.ListEvents{},
	"cancel": intent.Cancel{},
	"skip":   intent.Skip{},
}

// commandNames keeps registration order stable.
var commandNames = []string{"start", "event", "events", "cancel", "skip"}

// Commands builds the slash commands with localized descriptions.
func Commands(tr output.T) []*discordgo.ApplicationCommand {
	commands := make([]*discordgo.ApplicationCommand, 0, len(commandNames))
	for _, name := range commandNames {
		key := "command." + name
		commands = append(commands, &discordgo.ApplicationCommand{
			Name:        name,
			Description: tr.T("en", key, nil),
			DescriptionLocalizations: &map[discordgo.Locale]string{
				discordgo.Russian: tr.T("ru", key, nil),
			},
		})
	}
	return commands
}

// HandleCommand answers a slash command. The response is deferred first
// because publishing (/skip) talks to the database and Discord.
func (h *Handler) HandleCommand(ctx context.Context, i *discordgo.InteractionCreate) {
	in, ok := commandIntents[i.ApplicationCommandData().Name]
	if !ok {
		return
	}
	if err := deferEphemeral(ctx, h.api, i.Interaction); err != nil {
		logrus.WithError(err).Warn("⚠️ Failed to acknowledge command")
		return
	}
	h.dispatch(ctx, interactionActor(i), string(i.Locale), in, &deferredResponder{api: h.api, interaction: i.Interaction})
}

// dispatch routes the intents shared by commands, typed commands and menu
// buttons.
func (h *Handler) dispatch(ctx context.Context, actor input.Actor, locale string, in intent.Intent, r responder) {
	switch in.(type) {
	case intent.Menu:
		h.showMenu(ctx, actor, locale, r)
	case intent.ListEvents:
		h.showEvents(ctx, locale, r)
	default:
		h.create(ctx, actor, locale, in, r)
	}
}

func (h *Handler) showMenu(ctx context.Context, actor input.Actor, locale string, r responder) {
	defer r.done(ctx)
	canCreate := h.authorizer.Allowed(actor.UserID)
	key := "menu.welcome_guest"
	if canCreate {
		key = "menu.welcome"
	}
	r.show(ctx, h.tr.T(locale, key, nil), nil, dc.MenuComponents(h.tr, locale, canCreate))
}

func (h *Handler) showEvents(ctx context.Context, locale string, r responder) {
	defer r.done(ctx)
	events, err := h.events.ListEvents(ctx)
	if err != nil {
		logrus.WithError(err).Error("❌ Failed to list events")
		notify(ctx, r, dc.ErrorMessage(h.tr, locale, err))
		return
	}
	if len(events) == 0 {
		notify(ctx, r, h.tr.T(locale, "events.empty", nil))
		return
	}
	r.show(ctx, h.tr.T(locale, "events.title", nil), nil, dc.EventListComponents(events))
}
