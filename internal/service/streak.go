package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/repository"
	"github.com/Rahik-516/Noor-Web/internal/validation"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

type StreakEvent struct {
	UserID      string `json:"userId" validate:"required"`
	StreakCount int    `json:"streakCount" validate:"min=0"`
}

// StreakService accepts streak counts from the external system that maintains them.
type StreakService struct {
	repo          repository.StreakRepository
	webhookSecret string
	clock         clock.Clock
}

func NewStreakService(repo repository.StreakRepository, webhookSecret string, clk clock.Clock) *StreakService {
	return &StreakService{
		repo:          repo,
		webhookSecret: webhookSecret,
		clock:         clk,
	}
}

func (s *StreakService) HandleWebhook(payload []byte, headers http.Header) (*StreakEvent, error) {
	if s.webhookSecret == "" {
		slog.Warn("streak no webhook secret configured, skipping signature verification")
	} else {
		wh, err := standardwebhooks.NewWebhookRaw([]byte(s.webhookSecret))
		if err != nil {
			return nil, fmt.Errorf("failed to create webhook verifier: %w", err)
		}

		httpHeaders := http.Header{}
		httpHeaders.Set("webhook-id", headers.Get("webhook-id"))
		httpHeaders.Set("webhook-timestamp", headers.Get("webhook-timestamp"))
		httpHeaders.Set("webhook-signature", headers.Get("webhook-signature"))

		err = wh.Verify(payload, httpHeaders)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
	}

	var event StreakEvent
	err := json.Unmarshal(payload, &event)
	if err != nil {
		return nil, validation.Invalid("body", "is not valid JSON")
	}

	err = validation.Struct(event)
	if err != nil {
		return nil, err
	}

	err = s.repo.Upsert(event.UserID, event.StreakCount, s.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to save streak: %w", err)
	}

	slog.Info("streak updated", "user_id", event.UserID, "streak_count", event.StreakCount)
	return &event, nil
}
