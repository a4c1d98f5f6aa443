package service

import (
	"errors"
	"testing"

	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/repository"
	"github.com/Rahik-516/Noor-Web/internal/validation"
)

func TestUpsertSettingDefaults(t *testing.T) {
	env := newTestEnv(t)

	setting, err := env.goals.UpsertSetting("u1", GoalSettingInput{Title: "  তাহাজ্জুদ ", GoalType: model.GoalTypeCustom, Unit: "রাকাত"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if setting.Title != "তাহাজ্জুদ" || setting.TargetValue != 1 || !setting.Enabled || setting.IsCustom {
		t.Fatalf("unexpected defaults %+v", setting)
	}
}

func TestUpsertSettingValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		input GoalSettingInput
	}{
		{name: "missing title", input: GoalSettingInput{GoalType: model.GoalTypeCustom, Unit: "x"}},
		{name: "blank title", input: GoalSettingInput{Title: "   ", GoalType: model.GoalTypeCustom, Unit: "x"}},
		{name: "bad type", input: GoalSettingInput{Title: "A", GoalType: "zakat", Unit: "x"}},
		{name: "zero target", input: GoalSettingInput{Title: "A", GoalType: model.GoalTypeCustom, Unit: "x", TargetValue: intPtr(0)}},
		{name: "missing unit", input: GoalSettingInput{Title: "A", GoalType: model.GoalTypeCustom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.goals.UpsertSetting("u1", tt.input)
			if !errors.Is(err, validation.ErrInvalid) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	settings, _ := env.settings.Settings("u1")
	if len(settings) != 0 {
		t.Fatalf("expected nothing persisted, got %d settings", len(settings))
	}
}

func TestUpsertSettingByIDRenames(t *testing.T) {
	env := newTestEnv(t)

	a, _ := env.goals.UpsertSetting("u1", GoalSettingInput{Title: "A", GoalType: model.GoalTypeCustom, Unit: "x"})
	_, _ = env.goals.UpsertSetting("u1", GoalSettingInput{Title: "B", GoalType: model.GoalTypeCustom, Unit: "x"})

	renamed, err := env.goals.UpsertSetting("u1", GoalSettingInput{ID: a.ID, Title: "A2", GoalType: model.GoalTypeCustom, Unit: "x", Enabled: boolPtr(false)})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.ID != a.ID || renamed.Title != "A2" || renamed.Enabled {
		t.Fatalf("unexpected rename result %+v", renamed)
	}

	_, err = env.goals.UpsertSetting("u1", GoalSettingInput{ID: a.ID, Title: "B", GoalType: model.GoalTypeCustom, Unit: "x"})
	if !errors.Is(err, repository.ErrDuplicateGoalTitle) {
		t.Fatalf("expected ErrDuplicateGoalTitle, got %v", err)
	}
}

func TestSeedDefaultsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.goals.SeedDefaults("u1")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	second, err := env.goals.SeedDefaults("u1")
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}

	if len(first) != 7 || len(second) != 7 {
		t.Fatalf("expected 7 settings both times, got %d and %d", len(first), len(second))
	}
}

func TestRecordProgressClampsAndIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	quran, _ := env.goals.UpsertSetting("u1", GoalSettingInput{Title: "কুরআন তিলাওয়াত", GoalType: model.GoalTypeQuran, Unit: "পৃষ্ঠা", TargetValue: intPtr(5)})
	date := today(env.clock)

	result, err := env.goals.RecordProgress("u1", ProgressInput{GoalID: quran.ID, Date: date, CompletedValue: 9})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if result.Progress.CompletedValue != 5 || !result.Progress.Completed {
		t.Fatalf("expected clamped completed progress, got %+v", result.Progress)
	}

	again, err := env.goals.RecordProgress("u1", ProgressInput{GoalID: quran.ID, Date: date, CompletedValue: 9})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if again.Progress.ID != result.Progress.ID || again.Progress.CompletedValue != result.Progress.CompletedValue {
		t.Fatalf("expected replay to leave row unchanged, got %+v vs %+v", again.Progress, result.Progress)
	}

	day, _ := env.goals.Day("u1", date)
	if len(day.Progress) != 1 {
		t.Fatalf("expected one progress row, got %d", len(day.Progress))
	}
}

func TestRecordProgressRejects(t *testing.T) {
	env := newTestEnv(t)
	goal, _ := env.goals.UpsertSetting("u1", GoalSettingInput{Title: "A", GoalType: model.GoalTypeCustom, Unit: "x"})

	_, err := env.goals.RecordProgress("u1", ProgressInput{GoalID: goal.ID, Date: "07-03-2026", CompletedValue: 1})
	if !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("expected invalid date error, got %v", err)
	}

	_, err = env.goals.RecordProgress("u1", ProgressInput{GoalID: goal.ID, Date: "2026-03-07", CompletedValue: -1})
	if !errors.Is(err, validation.ErrInvalid) {
		t.Fatalf("expected negative value error, got %v", err)
	}

	_, err = env.goals.RecordProgress("u2", ProgressInput{GoalID: goal.ID, Date: "2026-03-07", CompletedValue: 1})
	if !errors.Is(err, repository.ErrGoalSettingNotFound) {
		t.Fatalf("expected other user's goal to be not found, got %v", err)
	}
}

func TestDeleteSettingScoped(t *testing.T) {
	env := newTestEnv(t)
	goal, _ := env.goals.UpsertSetting("u1", GoalSettingInput{Title: "A", GoalType: model.GoalTypeCustom, Unit: "x"})

	err := env.goals.DeleteSetting("u2", goal.ID)
	if !errors.Is(err, repository.ErrGoalSettingNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}

	err = env.goals.DeleteSetting("u1", goal.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
}
