package service

import (
	"context"
	"errors"

	"league-registration/internal/api"
	"league-registration/internal/constants"
	"league-registration/internal/domain"

	"github.com/rs/zerolog"
)

// CustomerService keeps at most one active gateway customer per user.
type CustomerService struct {
	store   CustomerStore
	gateway PaymentGateway
	logger  zerolog.Logger
}

func NewCustomerService(store CustomerStore, gateway PaymentGateway, logger zerolog.Logger) *CustomerService {
	return &CustomerService{store: store, gateway: gateway, logger: logger}
}

// GetOrCreateCustomer returns the user's gateway customer id, creating the
// customer and its mapping on first use. When a concurrent request inserts
// the mapping first, its customer id is returned instead.
func (s *CustomerService) GetOrCreateCustomer(ctx context.Context, userID, email string) (string, error) {
	log := s.logger.With().Str("user_id", userID).Logger()

	var customerID string
	err := retryOnConflict(ctx, log, "customer mapping", func(attempt int) error {
		existing, err := s.store.GetActive(ctx, userID)
		if err == nil {
			customerID = existing.CustomerID
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		defer cancel()

		created, err := s.gateway.CreateCustomer(apiCtx, api.CustomerParams{
			Email:          email,
			UserID:         userID,
			IdempotencyKey: customerIdempotencyKey(userID),
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to create payment customer")
			return domain.External("Failed to create payment customer", err)
		}

		mapping, err := s.store.Create(ctx, userID, created)
		if err != nil {
			if domain.KindOf(err) == domain.ErrConflict {
				log.Info().Str("customer_id", created).Msg("customer mapping created concurrently, re-reading")
			}
			return err
		}

		log.Info().Str("customer_id", mapping.CustomerID).Msg("payment customer created")
		customerID = mapping.CustomerID
		return nil
	})
	if err != nil {
		return "", err
	}
	return customerID, nil
}

// Concurrent creators for one user send the same key, so the gateway hands
// back a single customer.
func customerIdempotencyKey(userID string) string {
	return "customer-create-" + userID
}
