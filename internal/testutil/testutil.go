// Package testutil opens migrated SQLite databases and seeds fixtures for
// package tests.
package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"league-registration/internal/database"
	"league-registration/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// NewDB returns a migrated database in a temp dir, closed on cleanup.
func NewDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "league.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type User struct {
	Name  string
	Email string
	Phone string
}

// CreateUser inserts a profile with a fresh UUID and returns the id.
func CreateUser(t testing.TB, db *sql.DB, u User) string {
	t.Helper()

	id := uuid.NewString()
	var phone sql.NullString
	if u.Phone != "" {
		phone = sql.NullString{String: u.Phone, Valid: true}
	}
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO users (id, name, email, phone) VALUES (?, ?, ?, ?)`,
		id, u.Name, u.Email, phone)
	require.NoError(t, err)
	return id
}

// CreateLeague inserts a league. A nil cost makes it free.
func CreateLeague(t testing.TB, db *sql.DB, name string, cost *float64) int64 {
	t.Helper()

	var c sql.NullFloat64
	if cost != nil {
		c = sql.NullFloat64{Float64: *cost, Valid: true}
	}
	res, err := db.ExecContext(context.Background(),
		`INSERT INTO leagues (name, cost) VALUES (?, ?)`, name, c)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func CreateSkill(t testing.TB, db *sql.DB, name string) int64 {
	t.Helper()

	res, err := db.ExecContext(context.Background(),
		`INSERT INTO skills (name, order_index) VALUES (?, (SELECT COUNT(*) FROM skills))`, name)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

type Payment struct {
	UserID     string
	LeagueID   int64
	TeamID     *int64
	AmountDue  float64
	AmountPaid float64
	Status     string
}

// CreatePayment inserts a fee record directly, bypassing the team trigger.
func CreatePayment(t testing.TB, db *sql.DB, p Payment) int64 {
	t.Helper()

	status := p.Status
	if status == "" {
		status = "pending"
	}
	var teamID sql.NullInt64
	if p.TeamID != nil {
		teamID = sql.NullInt64{Int64: *p.TeamID, Valid: true}
	}
	res, err := db.ExecContext(context.Background(),
		`INSERT INTO league_payments (user_id, team_id, league_id, amount_due, amount_paid, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.UserID, teamID, p.LeagueID, p.AmountDue, p.AmountPaid, status)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// Teams returns a league section ordered by display order.
func Teams(t testing.TB, db *sql.DB, leagueID int64, section domain.Section) []domain.Team {
	t.Helper()

	rows, err := db.QueryContext(context.Background(),
		`SELECT id FROM teams WHERE league_id = ? AND active = ? ORDER BY display_order`,
		leagueID, section.IsActive())
	require.NoError(t, err)
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())

	teams := make([]domain.Team, 0, len(ids))
	for _, id := range ids {
		teams = append(teams, Team(t, db, id))
	}
	return teams
}

func Team(t testing.TB, db *sql.DB, id int64) domain.Team {
	t.Helper()

	var (
		team   domain.Team
		roster string
		skill  sql.NullInt64
	)
	err := db.QueryRowContext(context.Background(),
		`SELECT id, league_id, name, captain_id, roster, active, display_order, skill_level_id
		 FROM teams WHERE id = ?`, id).
		Scan(&team.ID, &team.LeagueID, &team.Name, &team.CaptainID, &roster, &team.Active, &team.DisplayOrder, &skill)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(roster), &team.Roster))
	if skill.Valid {
		team.SkillLevelID = &skill.Int64
	}
	return team
}

// TeamPayments returns the fee records tied to a team, oldest first.
func TeamPayments(t testing.TB, db *sql.DB, teamID int64) []domain.FeeRecord {
	t.Helper()

	rows, err := db.QueryContext(context.Background(),
		`SELECT id, user_id, league_id, amount_due, amount_paid, status
		 FROM league_payments WHERE team_id = ? ORDER BY id`, teamID)
	require.NoError(t, err)
	defer rows.Close()

	var recs []domain.FeeRecord
	for rows.Next() {
		var (
			rec       domain.FeeRecord
			due, paid float64
			status    string
		)
		require.NoError(t, rows.Scan(&rec.ID, &rec.UserID, &rec.LeagueID, &due, &paid, &status))
		rec.TeamID = &teamID
		rec.AmountDue = domain.MoneyFromMajor(due)
		rec.AmountPaid = domain.MoneyFromMajor(paid)
		rec.Status = domain.PaymentStatus(status)
		recs = append(recs, rec)
	}
	require.NoError(t, rows.Err())
	return recs
}

func ActiveCustomers(t testing.TB, db *sql.DB, userID string) int {
	t.Helper()

	var n int
	err := db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM stripe_customers WHERE user_id = ? AND deleted_at IS NULL`, userID).Scan(&n)
	require.NoError(t, err)
	return n
}

// DeleteCustomer soft-deletes the user's active customer mapping.
func DeleteCustomer(t testing.TB, db *sql.DB, userID string) {
	t.Helper()

	res, err := db.ExecContext(context.Background(),
		`UPDATE stripe_customers SET deleted_at = CURRENT_TIMESTAMP WHERE user_id = ? AND deleted_at IS NULL`, userID)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func Float(v float64) *float64 { return &v }

func Int64(v int64) *int64 { return &v }
