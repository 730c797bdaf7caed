package service

import (
	"context"

	"league-registration/internal/api"
	"league-registration/internal/domain"
	"league-registration/internal/mailer"
	"league-registration/internal/repository"
)

type TeamStore interface {
	InTx(ctx context.Context, fn func(tx repository.TeamTx) error) error
}

type ProfileStore interface {
	Get(ctx context.Context, id string) (*domain.UserProfile, error)
	AppendTeam(ctx context.Context, userID string, teamID int64) error
}

type LeagueStore interface {
	Get(ctx context.Context, id int64) (*domain.League, error)
}

type SkillStore interface {
	Get(ctx context.Context, id int64) (*domain.SkillLevel, error)
}

type PaymentStore interface {
	Get(ctx context.Context, id int64) (*domain.FeeRecord, error)
}

type CustomerStore interface {
	GetActive(ctx context.Context, userID string) (*domain.CustomerMapping, error)
	Create(ctx context.Context, userID, customerID string) (*domain.CustomerMapping, error)
}

type PaymentGateway interface {
	CreateCustomer(ctx context.Context, p api.CustomerParams) (string, error)
	CreatePaymentIntent(ctx context.Context, p api.PaymentIntentParams) (*domain.PaymentIntent, error)
}

type EmailSender interface {
	Send(ctx context.Context, email api.Email) (string, error)
}

type AdminTrigger interface {
	Enabled() bool
	Trigger(ctx context.Context, sessionToken string) (int, error)
}

type MessageRenderer interface {
	Confirmation(s domain.RegistrationSummary) (mailer.Message, error)
	AdminRegistration(s domain.RegistrationSummary) (mailer.Message, error)
}

// Dispatcher sends post-registration notifications without blocking the
// caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, s domain.RegistrationSummary)
}
