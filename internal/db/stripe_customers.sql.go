package db

import (
	"context"
)

const getActiveStripeCustomer = `
SELECT id, user_id, customer_id, created_at, deleted_at
FROM stripe_customers
WHERE user_id = ? AND deleted_at IS NULL
`

func (q *Queries) GetActiveStripeCustomer(ctx context.Context, userID string) (StripeCustomer, error) {
	row := q.db.QueryRowContext(ctx, getActiveStripeCustomer, userID)
	var i StripeCustomer
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.CustomerID,
		&i.CreatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const insertStripeCustomer = `
INSERT INTO stripe_customers (id, user_id, customer_id)
VALUES (?, ?, ?)
`

type InsertStripeCustomerParams struct {
	ID         string
	UserID     string
	CustomerID string
}

func (q *Queries) InsertStripeCustomer(ctx context.Context, arg InsertStripeCustomerParams) error {
	_, err := q.db.ExecContext(ctx, insertStripeCustomer, arg.ID, arg.UserID, arg.CustomerID)
	return err
}
