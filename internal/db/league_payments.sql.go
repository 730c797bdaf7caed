package db

import (
	"context"
	"database/sql"
)

const getLeaguePayment = `
SELECT p.id, p.user_id, p.team_id, p.league_id, p.amount_due, p.amount_paid, p.status, p.due_date, p.created_at,
       l.name AS league_name
FROM league_payments p
JOIN leagues l ON l.id = p.league_id
WHERE p.id = ?
`

type GetLeaguePaymentRow struct {
	ID         int64
	UserID     string
	TeamID     sql.NullInt64
	LeagueID   int64
	AmountDue  float64
	AmountPaid float64
	Status     string
	DueDate    sql.NullTime
	CreatedAt  sql.NullTime
	LeagueName string
}

func (q *Queries) GetLeaguePayment(ctx context.Context, id int64) (GetLeaguePaymentRow, error) {
	row := q.db.QueryRowContext(ctx, getLeaguePayment, id)
	var i GetLeaguePaymentRow
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.TeamID,
		&i.LeagueID,
		&i.AmountDue,
		&i.AmountPaid,
		&i.Status,
		&i.DueDate,
		&i.CreatedAt,
		&i.LeagueName,
	)
	return i, err
}
