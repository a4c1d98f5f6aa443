package service

import (
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/Rahik-516/Noor-Web/internal/clock"
	"github.com/Rahik-516/Noor-Web/internal/validation"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

const testWebhookSecret = "MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func signedHeaders(t *testing.T, payload []byte) http.Header {
	t.Helper()

	wh, err := standardwebhooks.NewWebhookRaw([]byte(testWebhookSecret))
	if err != nil {
		t.Fatalf("webhook: %v", err)
	}

	now := time.Now()
	signature, err := wh.Sign("msg_1", now, payload)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	headers := http.Header{}
	headers.Set("webhook-id", "msg_1")
	headers.Set("webhook-timestamp", strconv.FormatInt(now.Unix(), 10))
	headers.Set("webhook-signature", signature)
	return headers
}

func TestStreakWebhookSigned(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStreakService(env.streaks, testWebhookSecret, env.clock)

	payload := []byte(`{"userId":"u1","streakCount":9}`)
	event, err := svc.HandleWebhook(payload, signedHeaders(t, payload))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if event.StreakCount != 9 {
		t.Fatalf("expected 9, got %d", event.StreakCount)
	}

	count, _ := env.streaks.StreakCount("u1")
	if count != 9 {
		t.Fatalf("expected stored 9, got %d", count)
	}
}

func TestStreakWebhookRejectsBadSignature(t *testing.T) {
	env := newTestEnv(t)
	svc := NewStreakService(env.streaks, testWebhookSecret, env.clock)

	headers := signedHeaders(t, []byte(`{"userId":"u1","streakCount":1}`))
	_, err := svc.HandleWebhook([]byte(`{"userId":"u1","streakCount":100}`), headers)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	count, _ := env.streaks.StreakCount("u1")
	if count != 0 {
		t.Fatalf("streak changed to %d", count)
	}
}

func TestStreakWebhookValidation(t *testing.T) {
	repo := &fakeStreakRepo{}
	svc := NewStreakService(repo, "", clock.NewFake(testStart))

	tests := []string{
		`not json`,
		`{"streakCount":3}`,
		`{"userId":"u1","streakCount":-1}`,
	}

	for _, payload := range tests {
		_, err := svc.HandleWebhook([]byte(payload), http.Header{})
		if !errors.Is(err, validation.ErrInvalid) {
			t.Fatalf("%s: expected validation error, got %v", payload, err)
		}
	}
}
