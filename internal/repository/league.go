package repository

import (
	"context"

	"league-registration/internal/db"
	"league-registration/internal/domain"
)

type LeagueRepository struct {
	queries *db.Queries
}

func NewLeagueRepository(queries *db.Queries) *LeagueRepository {
	return &LeagueRepository{queries: queries}
}

func (r *LeagueRepository) Get(ctx context.Context, id int64) (*domain.League, error) {
	row, err := r.queries.GetLeague(ctx, id)
	if err != nil {
		return nil, mapError(err, "league")
	}

	league := &domain.League{ID: row.ID, Name: row.Name}
	if row.Cost.Valid {
		cost := domain.MoneyFromMajor(row.Cost.Float64)
		league.Cost = &cost
	}
	return league, nil
}

type SkillRepository struct {
	queries *db.Queries
}

func NewSkillRepository(queries *db.Queries) *SkillRepository {
	return &SkillRepository{queries: queries}
}

func (r *SkillRepository) Get(ctx context.Context, id int64) (*domain.SkillLevel, error) {
	row, err := r.queries.GetSkill(ctx, id)
	if err != nil {
		return nil, mapError(err, "skill level")
	}

	skill := &domain.SkillLevel{ID: row.ID, Name: row.Name}
	if row.Description.Valid {
		desc := row.Description.String
		skill.Description = &desc
	}
	return skill, nil
}
