// Package redis keeps the creation step marker of each user in Redis so that
// a restarted process can recognise sessions it lost.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"rsvpbot/internal/domain/entities"
	"rsvpbot/internal/ports/output"
)

const keyPrefix = "rsvpbot:step:"

var _ output.StepStore = (*StepStore)(nil)

type StepStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewClient parses url ("redis://host:6379/0") and pings the server.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	logrus.Info("✅ Redis connected")
	return client, nil
}

// NewStepStore stores markers that expire after ttl; 0 keeps them forever.
func NewStepStore(client *goredis.Client, ttl time.Duration) *StepStore {
	return &StepStore{client: client, ttl: ttl}
}

func (s *StepStore) SaveStep(ctx context.Context, userID string, step entities.Step) error {
	if err := s.client.Set(ctx, keyPrefix+userID, string(step), s.ttl).Err(); err != nil {
		return fmt.Errorf("save step: %w", err)
	}
	return nil
}

func (s *StepStore) LoadStep(ctx context.Context, userID string) (entities.Step, error) {
	val, err := s.client.Get(ctx, keyPrefix+userID).Result()
	if errors.Is(err, goredis.Nil) {
		return entities.StepIdle, nil
	}
	if err != nil {
		return entities.StepIdle, fmt.Errorf("load step: %w", err)
	}
	return entities.Step(val), nil
}

func (s *StepStore) ClearStep(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("clear step: %w", err)
	}
	return nil
}
