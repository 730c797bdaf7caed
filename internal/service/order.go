package service

import (
	"context"

	"league-registration/internal/domain"
	"league-registration/internal/repository"
)

// OrderAssigner picks the next display position in a league section.
type OrderAssigner struct{}

func NewOrderAssigner() *OrderAssigner {
	return &OrderAssigner{}
}

// NextDisplayOrder returns max+1 over the section, or 1 when it is empty. It
// must run on the same transaction as the insert that uses the result.
func (a *OrderAssigner) NextDisplayOrder(ctx context.Context, tx repository.TeamTx, leagueID int64, section domain.Section) (int, error) {
	top, err := tx.MaxDisplayOrder(ctx, leagueID, section)
	if err != nil {
		return 0, err
	}
	return top + 1, nil
}
