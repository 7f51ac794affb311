package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"rsvpbot/internal/ports/output"
)

// Intents needed for slash commands, components and the typed creation
// dialogue in guild channels and DMs.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// NewSession creates an unopened Discord session with the bot's intents.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = Intents
	return s, nil
}

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	tr      output.T
}

// NewBot attaches handler to the session.
func NewBot(session *discordgo.Session, handler *Handler, tr output.T) *Bot {
	bot := &Bot{
		session: session,
		handler: handler,
		tr:      tr,
	}
	bot.setupHandlers()
	return bot
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handler.HandleInteraction)
	b.session.AddHandler(b.handler.HandleMessage)
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logrus.WithField("user", r.User.Username).Info("✅ Connected to Discord")
	})
}

// Start opens the gateway, registers the slash commands and runs until ctx
// is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	defer b.session.Close()

	commands := Commands(b.tr)
	if _, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", commands, discordgo.WithContext(ctx)); err != nil {
		logrus.WithError(err).Warn("⚠️ Failed to register slash commands")
	} else {
		logrus.WithField("count", len(commands)).Info("✅ Slash commands registered")
	}

	logrus.Info("🤖 Bot is online")
	<-ctx.Done()
	logrus.Info("Shutting down")
	return nil
}
