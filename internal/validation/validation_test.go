package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleInput struct {
	Title  string `json:"title" validate:"required,max=10"`
	Target int    `json:"targetValue" validate:"gt=0"`
	Kind   string `json:"goalType" validate:"oneof=prayer quran"`
}

func TestStructReportsJSONFieldName(t *testing.T) {
	err := Struct(sampleInput{Title: "ok", Target: 0, Kind: "prayer"})
	if err == nil {
		t.Fatal("expected error for zero target")
	}

	var vErr *Error
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if vErr.Field != "targetValue" {
		t.Fatalf("expected field targetValue, got %q", vErr.Field)
	}
	if !errors.Is(err, ErrInvalid) {
		t.Fatal("expected error to match ErrInvalid")
	}
}

func TestStructValid(t *testing.T) {
	err := Struct(sampleInput{Title: "ok", Target: 1, Kind: "quran"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructOneOf(t *testing.T) {
	err := Struct(sampleInput{Title: "ok", Target: 1, Kind: "zakat"})
	if err == nil || !strings.Contains(err.Error(), "must be one of") {
		t.Fatalf("expected oneof message, got %v", err)
	}
}

func TestValidateGoalTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "trimmed", input: "  যিকির  ", want: "যিকির"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "too long", input: strings.Repeat("ক", 101), wantErr: true},
		{name: "max runes", input: strings.Repeat("ক", 100), want: strings.Repeat("ক", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateGoalTitle(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("date", "2026-03-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "2026-3-1", "01-03-2026", "2026-02-30"} {
		if err := ValidateDate("date", bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
