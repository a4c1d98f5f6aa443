package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
)

func TestJWTRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret", time.Hour, clock.NewFake(testStart))

	token, err := auth.GenerateJWT("u1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := auth.VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("expected u1, got %s", userID)
	}
}

func TestJWTRejects(t *testing.T) {
	clk := clock.NewFake(testStart)
	auth := NewAuthService("test-secret", time.Hour, clk)
	token, _ := auth.GenerateJWT("u1")

	other := NewAuthService("other-secret", time.Hour, clk)
	_, err := other.VerifyJWT(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	_, err = auth.VerifyJWT("not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	clk.Advance(2 * time.Hour)
	_, err = auth.VerifyJWT(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}
