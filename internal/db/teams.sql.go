package db

import (
	"context"
	"database/sql"
)

const getMaxDisplayOrder = `
SELECT CAST(COALESCE(MAX(display_order), 0) AS INTEGER)
FROM teams
WHERE league_id = ? AND active = ?
`

type GetMaxDisplayOrderParams struct {
	LeagueID int64
	Active   bool
}

func (q *Queries) GetMaxDisplayOrder(ctx context.Context, arg GetMaxDisplayOrderParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, getMaxDisplayOrder, arg.LeagueID, arg.Active)
	var top int64
	err := row.Scan(&top)
	return top, err
}

const insertTeam = `
INSERT INTO teams (name, league_id, captain_id, roster, active, display_order, skill_level_id)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertTeamParams struct {
	Name         string
	LeagueID     int64
	CaptainID    string
	Roster       string
	Active       bool
	DisplayOrder int64
	SkillLevelID sql.NullInt64
}

func (q *Queries) InsertTeam(ctx context.Context, arg InsertTeamParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertTeam,
		arg.Name,
		arg.LeagueID,
		arg.CaptainID,
		arg.Roster,
		arg.Active,
		arg.DisplayOrder,
		arg.SkillLevelID,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getTeam = `
SELECT id, name, league_id, captain_id, roster, active, display_order, skill_level_id, created_at
FROM teams
WHERE id = ?
`

func (q *Queries) GetTeam(ctx context.Context, id int64) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, id)
	var i Team
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.LeagueID,
		&i.CaptainID,
		&i.Roster,
		&i.Active,
		&i.DisplayOrder,
		&i.SkillLevelID,
		&i.CreatedAt,
	)
	return i, err
}
