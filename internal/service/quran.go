package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/repository"
	"github.com/Rahik-516/Noor-Web/internal/validation"
	"github.com/google/uuid"
)

type JuzInput struct {
	JuzNumber int  `json:"juzNumber" validate:"min=1,max=30"`
	Completed bool `json:"completed"`
}

type QuranService struct {
	repo  repository.QuranRepository
	clock clock.Clock
}

func NewQuranService(repo repository.QuranRepository, clk clock.Clock) *QuranService {
	return &QuranService{
		repo:  repo,
		clock: clk,
	}
}

// Tracking returns the saved tracking mode, or the default pages mode
func (s *QuranService) Tracking(userID string) (*model.QuranTracking, error) {
	record, err := s.repo.Tracking(userID)
	if errors.Is(err, repository.ErrQuranTrackingNotFound) {
		return &model.QuranTracking{Tracking: model.DefaultTracking()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load quran tracking: %w", err)
	}

	tracking, err := model.DecodeTracking(record.Mode, []byte(record.Payload))
	if err != nil {
		return nil, fmt.Errorf("stored quran tracking is invalid: %w", err)
	}

	return &model.QuranTracking{Tracking: tracking, UpdatedAt: record.UpdatedAt}, nil
}

func (s *QuranService) SaveTracking(userID string, tracking model.TrackingMode) (*model.QuranTracking, error) {
	if tracking == nil {
		return nil, validation.Invalid("mode", "is required")
	}

	err := tracking.Validate()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(tracking)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quran tracking: %w", err)
	}

	now := s.clock.Now().UTC()
	err = s.repo.SaveTracking(&model.QuranTrackingRecord{
		UserID:    userID,
		Mode:      tracking.Mode(),
		Payload:   string(payload),
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save quran tracking: %w", err)
	}

	return &model.QuranTracking{Tracking: tracking, UpdatedAt: now}, nil
}

func (s *QuranService) JuzProgress(userID string) ([]*model.QuranJuzProgress, error) {
	return s.repo.JuzProgress(userID)
}

// SetJuz marks a juz complete or not; dateCompleted is set only while complete
func (s *QuranService) SetJuz(userID string, input JuzInput) (*model.QuranJuzProgress, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	progress := &model.QuranJuzProgress{
		ID:        uuid.New().String(),
		UserID:    userID,
		JuzNumber: input.JuzNumber,
		Completed: input.Completed,
		UpdatedAt: now,
	}
	if input.Completed {
		progress.DateCompleted = &now
	}

	stored, err := s.repo.UpsertJuz(progress)
	if err != nil {
		return nil, fmt.Errorf("failed to save juz progress: %w", err)
	}

	return stored, nil
}
