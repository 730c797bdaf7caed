package repository

import (
	"context"

	"league-registration/internal/db"
	"league-registration/internal/domain"
)

// PaymentRepository reads fee records. Rows are created by the
// teams_create_league_payment trigger, never by this package.
type PaymentRepository struct {
	queries *db.Queries
}

func NewPaymentRepository(queries *db.Queries) *PaymentRepository {
	return &PaymentRepository{queries: queries}
}

func (r *PaymentRepository) Get(ctx context.Context, id int64) (*domain.FeeRecord, error) {
	row, err := r.queries.GetLeaguePayment(ctx, id)
	if err != nil {
		return nil, mapError(err, "payment record")
	}

	rec := &domain.FeeRecord{
		ID:         row.ID,
		UserID:     row.UserID,
		LeagueID:   row.LeagueID,
		LeagueName: row.LeagueName,
		AmountDue:  domain.MoneyFromMajor(row.AmountDue),
		AmountPaid: domain.MoneyFromMajor(row.AmountPaid),
		Status:     domain.PaymentStatus(row.Status),
	}
	if row.TeamID.Valid {
		teamID := row.TeamID.Int64
		rec.TeamID = &teamID
	}
	if row.DueDate.Valid {
		due := row.DueDate.Time
		rec.DueDate = &due
	}
	return rec, nil
}
