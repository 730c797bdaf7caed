package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"league-registration/internal/api"
	"league-registration/internal/domain"
	"league-registration/internal/mailer"
	"league-registration/internal/repository"
)

// fakeGateway honours idempotency keys the way the real gateway does.
type fakeGateway struct {
	mu             sync.Mutex
	customers      map[string]string
	created        int
	customerEmails []string
	intents        []api.PaymentIntentParams
	failWith       error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{customers: map[string]string{}}
}

func (g *fakeGateway) CreateCustomer(ctx context.Context, p api.CustomerParams) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failWith != nil {
		return "", g.failWith
	}
	if id, ok := g.customers[p.IdempotencyKey]; ok && p.IdempotencyKey != "" {
		return id, nil
	}
	g.created++
	g.customerEmails = append(g.customerEmails, p.Email)
	id := fmt.Sprintf("cus_%d", g.created)
	g.customers[p.IdempotencyKey] = id
	return id, nil
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, p api.PaymentIntentParams) (*domain.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failWith != nil {
		return nil, g.failWith
	}
	g.intents = append(g.intents, p)
	n := len(g.intents)
	return &domain.PaymentIntent{
		ClientSecret: fmt.Sprintf("pi_%d_secret", n),
		IntentID:     fmt.Sprintf("pi_%d", n),
		Amount:       p.Amount,
		Currency:     p.Currency,
	}, nil
}

func (g *fakeGateway) calls() (customers int, intents int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.created, len(g.intents)
}

func (g *fakeGateway) emails() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.customerEmails...)
}

type recordingDispatcher struct {
	mu        sync.Mutex
	summaries []domain.RegistrationSummary
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, s domain.RegistrationSummary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.summaries = append(d.summaries, s)
}

func (d *recordingDispatcher) all() []domain.RegistrationSummary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.RegistrationSummary(nil), d.summaries...)
}

// failingProfiles reads through to the real store but cannot record
// membership.
type failingProfiles struct {
	ProfileStore
}

func (failingProfiles) AppendTeam(ctx context.Context, userID string, teamID int64) error {
	return errors.New("connection reset")
}

// expiringProfiles fails membership writes the way a timed-out query does.
type expiringProfiles struct {
	ProfileStore
}

func (expiringProfiles) AppendTeam(ctx context.Context, userID string, teamID int64) error {
	return fmt.Errorf("failed to append team: %w", context.DeadlineExceeded)
}

// cancelAfterCommit cancels the request once the team transaction commits.
type cancelAfterCommit struct {
	TeamStore
	cancel context.CancelFunc
}

func (c cancelAfterCommit) InTx(ctx context.Context, fn func(tx repository.TeamTx) error) error {
	err := c.TeamStore.InTx(ctx, fn)
	c.cancel()
	return err
}

// ctxRecordingProfiles notes the context error seen by AppendTeam.
type ctxRecordingProfiles struct {
	ProfileStore
	seen error
}

func (p *ctxRecordingProfiles) AppendTeam(ctx context.Context, userID string, teamID int64) error {
	p.seen = ctx.Err()
	return p.ProfileStore.AppendTeam(ctx, userID, teamID)
}

type fakeSender struct {
	mu   sync.Mutex
	sent []api.Email
	fail map[string]error // by recipient
}

func (s *fakeSender) Send(ctx context.Context, email api.Email) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[email.To[0]]; err != nil {
		return "", err
	}
	s.sent = append(s.sent, email)
	return fmt.Sprintf("email_%d", len(s.sent)), nil
}

func (s *fakeSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var to []string
	for _, e := range s.sent {
		to = append(to, e.To...)
	}
	return to
}

type fakeAdmin struct {
	mu      sync.Mutex
	enabled bool
	tokens  []string
	block   chan struct{}
}

func (a *fakeAdmin) Enabled() bool { return a.enabled }

func (a *fakeAdmin) Trigger(ctx context.Context, token string) (int, error) {
	if a.block != nil {
		select {
		case <-a.block:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tokens = append(a.tokens, token)
	return 200, nil
}

func (a *fakeAdmin) triggered() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.tokens...)
}

type stubRenderer struct {
	panicOnAdmin bool
}

func (stubRenderer) Confirmation(s domain.RegistrationSummary) (mailer.Message, error) {
	return mailer.Message{Subject: "Registration: " + s.TeamName, HTML: "<p>ok</p>"}, nil
}

func (r stubRenderer) AdminRegistration(s domain.RegistrationSummary) (mailer.Message, error) {
	if r.panicOnAdmin {
		panic("template exploded")
	}
	return mailer.Message{Subject: "New Team Registration: " + s.TeamName, HTML: "<p>new</p>"}, nil
}
