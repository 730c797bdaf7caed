package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"league-registration/internal/db"
	"league-registration/internal/domain"

	"github.com/rs/zerolog"
)

type NewTeam struct {
	LeagueID     int64
	Name         string
	CaptainID    string
	Section      domain.Section
	DisplayOrder int
	SkillLevelID *int64
}

// TeamTx is the set of team operations available inside one write
// transaction.
type TeamTx interface {
	MaxDisplayOrder(ctx context.Context, leagueID int64, section domain.Section) (int, error)
	Insert(ctx context.Context, team NewTeam) (*domain.Team, error)
}

type TeamRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// InTx runs fn in a single transaction and commits when fn returns nil.
// The connection is opened with _txlock=immediate, so the transaction holds
// the write lock from its first statement.
func (r *TeamRepository) InTx(ctx context.Context, fn func(tx TeamTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&teamTx{queries: r.queries.WithTx(tx)}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapError(err, "team")
	}
	return nil
}

type teamTx struct {
	queries *db.Queries
}

func (t *teamTx) MaxDisplayOrder(ctx context.Context, leagueID int64, section domain.Section) (int, error) {
	top, err := t.queries.GetMaxDisplayOrder(ctx, db.GetMaxDisplayOrderParams{
		LeagueID: leagueID,
		Active:   section.IsActive(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read max display order: %w", err)
	}
	return int(top), nil
}

func (t *teamTx) Insert(ctx context.Context, team NewTeam) (*domain.Team, error) {
	roster, err := json.Marshal([]string{team.CaptainID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode roster: %w", err)
	}

	skill := sql.NullInt64{}
	if team.SkillLevelID != nil {
		skill = sql.NullInt64{Int64: *team.SkillLevelID, Valid: true}
	}

	id, err := t.queries.InsertTeam(ctx, db.InsertTeamParams{
		Name:         team.Name,
		LeagueID:     team.LeagueID,
		CaptainID:    team.CaptainID,
		Roster:       string(roster),
		Active:       team.Section.IsActive(),
		DisplayOrder: int64(team.DisplayOrder),
		SkillLevelID: skill,
	})
	if err != nil {
		return nil, mapError(err, "team display order")
	}

	row, err := t.queries.GetTeam(ctx, id)
	if err != nil {
		return nil, mapError(err, "team")
	}
	return toDomainTeam(row)
}

func toDomainTeam(row db.Team) (*domain.Team, error) {
	var roster []string
	if row.Roster != "" {
		if err := json.Unmarshal([]byte(row.Roster), &roster); err != nil {
			return nil, fmt.Errorf("failed to decode roster of team %d: %w", row.ID, err)
		}
	}

	team := &domain.Team{
		ID:           row.ID,
		LeagueID:     row.LeagueID,
		Name:         row.Name,
		CaptainID:    row.CaptainID,
		Roster:       roster,
		Active:       row.Active,
		DisplayOrder: int(row.DisplayOrder),
		CreatedAt:    row.CreatedAt,
	}
	if row.SkillLevelID.Valid {
		id := row.SkillLevelID.Int64
		team.SkillLevelID = &id
	}
	return team, nil
}
