package service

import (
	"context"
	"strconv"

	"league-registration/internal/api"
	"league-registration/internal/constants"
	"league-registration/internal/domain"

	"github.com/rs/zerolog"
)

const defaultPaymentDescription = "League Payment"

type PaymentService struct {
	payments  PaymentStore
	profiles  ProfileStore
	customers *CustomerService
	gateway   PaymentGateway
	limits    domain.AmountLimits
	logger    zerolog.Logger
}

func NewPaymentService(payments PaymentStore, profiles ProfileStore, customers *CustomerService, gateway PaymentGateway, limits domain.AmountLimits, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		payments:  payments,
		profiles:  profiles,
		customers: customers,
		gateway:   gateway,
		limits:    limits,
		logger:    logger,
	}
}

// CreateIntent opens a gateway payment intent for the outstanding balance of
// a fee record owned by the caller. Nothing about the intent is stored.
func (s *PaymentService) CreateIntent(ctx context.Context, paymentID int64, session domain.Session) (*domain.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	log := s.logger.With().Int64("payment_id", paymentID).Str("user_id", session.UserID).Logger()

	rec, err := s.payments.Get(ctx, paymentID)
	if err != nil {
		if domain.KindOf(err) == domain.ErrNotFound {
			return nil, domain.NotFound("Payment not found", err)
		}
		return nil, err
	}

	if rec.UserID != session.UserID {
		log.Warn().Msg("payment intent requested for another user's record")
		return nil, domain.Authorization("Unauthorized")
	}

	outstanding := rec.Outstanding()
	if outstanding <= 0 {
		return nil, domain.Validation("Payment is already paid in full")
	}
	if err := s.limits.Check(outstanding); err != nil {
		return nil, err
	}

	email, err := s.customerEmail(ctx, session)
	if err != nil {
		return nil, err
	}
	customerID, err := s.customers.GetOrCreateCustomer(ctx, session.UserID, email)
	if err != nil {
		return nil, err
	}

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	intent, err := s.gateway.CreatePaymentIntent(apiCtx, api.PaymentIntentParams{
		Amount:     outstanding,
		Currency:   s.limits.Currency,
		CustomerID: customerID,
		Metadata:   intentMetadata(rec),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create payment intent")
		return nil, domain.External("Failed to create payment intent", err)
	}

	log.Info().
		Str("intent_id", intent.IntentID).
		Int64("amount", int64(outstanding)).
		Msg("payment intent created")

	if intent.Amount == 0 {
		intent.Amount = outstanding
	}
	if intent.Currency == "" {
		intent.Currency = s.limits.Currency
	}
	return intent, nil
}

// customerEmail prefers the session's email claim and falls back to the
// profile.
func (s *PaymentService) customerEmail(ctx context.Context, session domain.Session) (string, error) {
	if session.Email != "" {
		return session.Email, nil
	}
	profile, err := s.profiles.Get(ctx, session.UserID)
	if err != nil {
		return "", err
	}
	return profile.Email, nil
}

func intentMetadata(rec *domain.FeeRecord) map[string]string {
	teamID := ""
	if rec.TeamID != nil {
		teamID = strconv.FormatInt(*rec.TeamID, 10)
	}
	leagueName := rec.LeagueName
	if leagueName == "" {
		leagueName = defaultPaymentDescription
	}
	return map[string]string{
		"payment_id":  strconv.FormatInt(rec.ID, 10),
		"league_id":   strconv.FormatInt(rec.LeagueID, 10),
		"team_id":     teamID,
		"league_name": leagueName,
	}
}
