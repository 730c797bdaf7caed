package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"league-registration/internal/api"
	"league-registration/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSpace(b.buf.String()), "\n")
}

func summary(waitlist bool) domain.RegistrationSummary {
	return domain.RegistrationSummary{
		TeamID:       42,
		TeamName:     "Net Results",
		LeagueName:   "Tuesday Coed",
		Waitlist:     waitlist,
		CaptainName:  "Jordan",
		CaptainEmail: "jordan@example.com",
		RosterCount:  1,
		RegisteredAt: time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC),
		SessionToken: "session-token",
	}
}

func TestDispatchSendsAllNotifications(t *testing.T) {
	sender := &fakeSender{}
	admin := &fakeAdmin{enabled: true}
	n := NewNotificationService(stubRenderer{}, sender, admin, "info@example.com", time.Second, zerolog.Nop())

	n.Dispatch(context.Background(), summary(false))
	n.Wait()

	assert.ElementsMatch(t, []string{"jordan@example.com", "info@example.com"}, sender.recipients())
	assert.Equal(t, []string{"session-token"}, admin.triggered())
}

func TestDispatchWaitlistSkipsAdmin(t *testing.T) {
	sender := &fakeSender{}
	admin := &fakeAdmin{enabled: true}
	n := NewNotificationService(stubRenderer{}, sender, admin, "info@example.com", time.Second, zerolog.Nop())

	n.Dispatch(context.Background(), summary(true))
	n.Wait()

	assert.Equal(t, []string{"jordan@example.com"}, sender.recipients())
	assert.Empty(t, admin.triggered())
}

func TestDispatchFailuresAreIsolated(t *testing.T) {
	sender := &fakeSender{fail: map[string]error{"jordan@example.com": errors.New("mailbox full")}}
	admin := &fakeAdmin{enabled: true}
	n := NewNotificationService(stubRenderer{panicOnAdmin: true}, sender, admin, "info@example.com", time.Second, zerolog.Nop())

	n.Dispatch(context.Background(), summary(false))
	n.Wait()

	// Confirmation failed and the admin email panicked; the trigger still ran.
	assert.Empty(t, sender.recipients())
	assert.Equal(t, []string{"session-token"}, admin.triggered())
}

func TestDispatchDoesNotBlockAndOutlivesRequest(t *testing.T) {
	sender := &fakeSender{}
	admin := &fakeAdmin{enabled: true, block: make(chan struct{})}
	n := NewNotificationService(stubRenderer{}, sender, admin, "", 5*time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.Dispatch(ctx, summary(false))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a slow notification")
	}

	// Cancelling the request must not abort the in-flight trigger.
	cancel()
	close(admin.block)
	n.Wait()

	assert.Equal(t, []string{"session-token"}, admin.triggered())
}

func TestDispatchTimesOutSlowAttempts(t *testing.T) {
	admin := &fakeAdmin{enabled: true, block: make(chan struct{})}
	n := NewNotificationService(stubRenderer{}, &fakeSender{}, admin, "", 50*time.Millisecond, zerolog.Nop())

	n.Dispatch(context.Background(), summary(false))

	finished := make(chan struct{})
	go func() {
		n.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("notification attempt was not bounded by its timeout")
	}
	assert.Empty(t, admin.triggered())
}

func TestDispatchDisabledAdmin(t *testing.T) {
	sender := &fakeSender{}
	admin := &fakeAdmin{enabled: false}
	n := NewNotificationService(stubRenderer{}, sender, admin, "", time.Second, zerolog.Nop())

	n.Dispatch(context.Background(), summary(false))
	n.Wait()

	assert.Equal(t, []string{"jordan@example.com"}, sender.recipients())
	assert.Empty(t, admin.triggered())
}

func TestDispatchFailureLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"gateway unavailable", &api.APIError{Service: "resend", StatusCode: 503}, "warn"},
		{"rate limited", &api.APIError{Service: "resend", StatusCode: 429}, "warn"},
		{"rejected", &api.APIError{Service: "resend", StatusCode: 422, Message: "invalid to"}, "error"},
		{"transport", errors.New("connection reset"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &lockedBuffer{}
			sender := &fakeSender{fail: map[string]error{"jordan@example.com": tt.err}}
			n := NewNotificationService(stubRenderer{}, sender, &fakeAdmin{}, "", time.Second, zerolog.New(out))

			n.Dispatch(context.Background(), summary(true))
			n.Wait()

			var entry map[string]any
			for _, line := range out.lines() {
				var e map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &e))
				if e["message"] == "notification failed" {
					entry = e
				}
			}
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, "confirmation email", entry["task"])
		})
	}
}
