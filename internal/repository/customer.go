package repository

import (
	"context"
	"database/sql"
	"fmt"

	"league-registration/internal/db"
	"league-registration/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type CustomerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewCustomerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *CustomerRepository {
	return &CustomerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// GetActive returns the user's non-deleted mapping or a NotFound error.
func (r *CustomerRepository) GetActive(ctx context.Context, userID string) (*domain.CustomerMapping, error) {
	row, err := r.queries.GetActiveStripeCustomer(ctx, userID)
	if err != nil {
		return nil, mapError(err, "customer mapping")
	}
	return toDomainCustomer(row), nil
}

// Create inserts a mapping. A concurrent winner surfaces as a Conflict error
// from the partial unique index on active rows.
func (r *CustomerRepository) Create(ctx context.Context, userID, customerID string) (*domain.CustomerMapping, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	if err := r.queries.InsertStripeCustomer(ctx, db.InsertStripeCustomerParams{
		ID:         id,
		UserID:     userID,
		CustomerID: customerID,
	}); err != nil {
		return nil, mapError(err, "customer mapping")
	}

	r.logger.Debug().Str("user_id", userID).Str("customer_id", customerID).Msg("customer mapping created")
	return r.GetActive(ctx, userID)
}

func toDomainCustomer(row db.StripeCustomer) *domain.CustomerMapping {
	m := &domain.CustomerMapping{
		ID:         row.ID,
		UserID:     row.UserID,
		CustomerID: row.CustomerID,
		CreatedAt:  row.CreatedAt,
	}
	if row.DeletedAt.Valid {
		deleted := row.DeletedAt.Time
		m.DeletedAt = &deleted
	}
	return m
}
