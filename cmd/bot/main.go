package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"rsvpbot/internal/adapters/discord"
	"rsvpbot/internal/application"
	"rsvpbot/internal/config"
	"rsvpbot/internal/infrastructure/database"
	"rsvpbot/internal/infrastructure/i18n"
	"rsvpbot/internal/infrastructure/redis"
	"rsvpbot/pkg/tz"
)

const janitorInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("❌ Invalid configuration")
	}
	cfg.ConfigureLogging()

	location, err := tz.Load(cfg.Timezone)
	if err != nil {
		logrus.WithError(err).Fatal("❌ Unknown timezone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("❌ Database migrations failed")
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("❌ Database initialization failed")
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		logrus.WithError(err).Fatal("❌ Redis initialization failed")
	}
	defer redisClient.Close()

	eventRepo := database.NewEventRepository(pool)
	participantRepo := database.NewParticipantRepository(pool)
	steps := redis.NewStepStore(redisClient, cfg.SessionTTL)
	translator := i18n.NewTranslator(cfg.DefaultLocale)

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		logrus.WithError(err).Fatal("❌ Discord initialization failed")
	}
	publisher := discord.NewPublisher(session, cfg.BroadcastChannelID, translator, "")

	display := application.NewDisplayUpdater(publisher, eventRepo, participantRepo, application.DisplayConfig{
		Debounce:  cfg.DebounceInterval,
		BaseDelay: cfg.RetryBaseDelay,
		Attempts:  cfg.RetryAttempts,
	})
	sessions := application.NewSessionStore(steps, cfg.SessionTTL)
	go sessions.RunJanitor(ctx, janitorInterval)

	eventUC := application.NewEventService(eventRepo, participantRepo, publisher, cfg.AllowedUsers, display, location)
	participantUC := application.NewParticipantService(participantRepo, eventRepo, display)
	creationUC := application.NewCreationService(sessions, eventUC, cfg.AllowedUsers, location)

	handler := discord.NewHandler(session, creationUC, eventUC, participantUC, cfg.AllowedUsers, translator, cfg.SurfaceGrace)
	bot := discord.NewBot(session, handler, translator)
	if err := bot.Start(ctx); err != nil {
		logrus.WithError(err).Error("❌ Bot failed")
		os.Exit(1)
	}
}
