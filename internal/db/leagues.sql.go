package db

import (
	"context"
)

const getLeague = `
SELECT id, name, cost, created_at
FROM leagues
WHERE id = ?
`

func (q *Queries) GetLeague(ctx context.Context, id int64) (League, error) {
	row := q.db.QueryRowContext(ctx, getLeague, id)
	var i League
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Cost,
		&i.CreatedAt,
	)
	return i, err
}

const getSkill = `
SELECT id, name, description, order_index
FROM skills
WHERE id = ?
`

func (q *Queries) GetSkill(ctx context.Context, id int64) (Skill, error) {
	row := q.db.QueryRowContext(ctx, getSkill, id)
	var i Skill
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.OrderIndex,
	)
	return i, err
}
