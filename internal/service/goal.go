package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/repository"
	"github.com/Rahik-516/Noor-Web/internal/validation"
	"github.com/google/uuid"
)

// GoalSettingInput is the body of a goal setting upsert. Omitted targetValue,
// enabled and isCustom default to 1, true and false.
type GoalSettingInput struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,max=100"`
	GoalType    string `json:"goalType" validate:"required,oneof=prayer quran dhikr custom"`
	TargetValue *int   `json:"targetValue" validate:"omitempty,gt=0"`
	Unit        string `json:"unit" validate:"required,max=32"`
	Enabled     *bool  `json:"enabled"`
	IsCustom    *bool  `json:"isCustom"`
}

type ProgressInput struct {
	GoalID         string `json:"goalId" validate:"required"`
	Date           string `json:"date"`
	CompletedValue int    `json:"completedValue" validate:"min=0"`
	Completed      bool   `json:"completed"`
}

// DayView is the catalog plus the progress rows of one day.
type DayView struct {
	Settings []*model.GoalSetting  `json:"settings"`
	Progress []*model.GoalProgress `json:"progress"`
	Date     string                `json:"date"`
}

type ProgressResult struct {
	Success              bool                `json:"success"`
	Progress             *model.GoalProgress `json:"progress"`
	UnlockedAchievements []string            `json:"unlockedAchievements"`
}

type GoalService struct {
	settings     repository.GoalSettingRepository
	progress     repository.GoalProgressRepository
	achievements *AchievementService
	clock        clock.Clock
}

func NewGoalService(
	settings repository.GoalSettingRepository,
	progress repository.GoalProgressRepository,
	achievements *AchievementService,
	clk clock.Clock,
) *GoalService {
	return &GoalService{
		settings:     settings,
		progress:     progress,
		achievements: achievements,
		clock:        clk,
	}
}

func (s *GoalService) Day(userID, date string) (*DayView, error) {
	err := validation.ValidateDate("date", date)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Settings(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal settings: %w", err)
	}

	progress, err := s.progress.ByDate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal progress: %w", err)
	}

	return &DayView{Settings: settings, Progress: progress, Date: date}, nil
}

// UpsertSetting updates the caller's setting in place when input.ID names one,
// otherwise inserts or overwrites by (user, title).
func (s *GoalService) UpsertSetting(userID string, input GoalSettingInput) (*model.GoalSetting, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}

	title, err := validation.ValidateGoalTitle(input.Title)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	setting := &model.GoalSetting{
		ID:          input.ID,
		UserID:      userID,
		Title:       title,
		GoalType:    input.GoalType,
		TargetValue: 1,
		Unit:        input.Unit,
		Enabled:     true,
		IsCustom:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input.TargetValue != nil {
		setting.TargetValue = *input.TargetValue
	}
	if input.Enabled != nil {
		setting.Enabled = *input.Enabled
	}
	if input.IsCustom != nil {
		setting.IsCustom = *input.IsCustom
	}

	if setting.ID != "" {
		existing, err := s.settings.ByID(userID, setting.ID)
		if err == nil {
			setting.CreatedAt = existing.CreatedAt
			err = s.settings.Update(setting)
			if err != nil {
				return nil, err
			}
			return setting, nil
		}
		if !errors.Is(err, repository.ErrGoalSettingNotFound) {
			return nil, fmt.Errorf("failed to load goal setting: %w", err)
		}
	}

	setting.ID = uuid.New().String()
	stored, err := s.settings.Upsert(setting)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert goal setting: %w", err)
	}

	return stored, nil
}

func (s *GoalService) DeleteSetting(userID, id string) error {
	if id == "" {
		return validation.Invalid("id", "is required")
	}
	return s.settings.Delete(userID, id)
}

// SeedDefaults stores the built-in goals for a user who has none yet and
// returns the user's settings either way.
func (s *GoalService) SeedDefaults(userID string) ([]*model.GoalSetting, error) {
	settings, err := s.settings.Settings(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal settings: %w", err)
	}
	if len(settings) > 0 {
		return settings, nil
	}

	for _, def := range model.DefaultGoals() {
		now := s.clock.Now().UTC()
		def.ID = uuid.New().String()
		def.UserID = userID
		def.CreatedAt = now
		def.UpdatedAt = now

		stored, err := s.settings.Upsert(&def)
		if err != nil {
			return nil, fmt.Errorf("failed to seed goal %s: %w", def.Title, err)
		}
		settings = append(settings, stored)
	}

	slog.Info("default goals seeded", "user_id", userID, "count", len(settings))
	return settings, nil
}

// RecordProgress clamps and stores one day's value for a goal, then re-runs
// the achievement rules.
func (s *GoalService) RecordProgress(userID string, input ProgressInput) (*ProgressResult, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}

	err = validation.ValidateDate("date", input.Date)
	if err != nil {
		return nil, err
	}

	setting, err := s.settings.ByID(userID, input.GoalID)
	if err != nil {
		return nil, err
	}

	value, completed := model.ResolveProgress(input.CompletedValue, input.Completed, setting.TargetValue)

	stored, err := s.progress.Upsert(&model.GoalProgress{
		ID:             uuid.New().String(),
		UserID:         userID,
		GoalID:         setting.ID,
		ProgressDate:   input.Date,
		CompletedValue: value,
		Completed:      completed,
		UpdatedAt:      s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save goal progress: %w", err)
	}

	unlocked := s.achievements.CheckAndUnlock(userID)

	return &ProgressResult{
		Success:              true,
		Progress:             stored,
		UnlockedAchievements: unlocked,
	}, nil
}
