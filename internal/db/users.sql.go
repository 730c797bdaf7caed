package db

import (
	"context"
)

const getUser = `
SELECT id, name, email, phone, team_ids, created_at
FROM users
WHERE id = ?
`

func (q *Queries) GetUser(ctx context.Context, id string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUser, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.TeamIds,
		&i.CreatedAt,
	)
	return i, err
}

// json_insert with '$[#]' appends in place, so concurrent appends for the
// same user never overwrite each other.
const appendUserTeam = `
UPDATE users
SET team_ids = json_insert(COALESCE(team_ids, '[]'), '$[#]', ?)
WHERE id = ?
`

type AppendUserTeamParams struct {
	TeamID int64
	ID     string
}

func (q *Queries) AppendUserTeam(ctx context.Context, arg AppendUserTeamParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, appendUserTeam, arg.TeamID, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
