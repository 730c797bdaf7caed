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

type UserRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewUserRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	row, err := r.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapError(err, "user profile")
	}

	var teamIDs []int64
	if row.TeamIds != "" {
		if err := json.Unmarshal([]byte(row.TeamIds), &teamIDs); err != nil {
			return nil, fmt.Errorf("failed to decode team ids of user %s: %w", id, err)
		}
	}

	return &domain.UserProfile{
		ID:      row.ID,
		Name:    row.Name,
		Email:   row.Email,
		Phone:   row.Phone.String,
		TeamIDs: teamIDs,
	}, nil
}

// AppendTeam adds teamID to the end of the user's team list in a single
// statement.
func (r *UserRepository) AppendTeam(ctx context.Context, userID string, teamID int64) error {
	n, err := r.queries.AppendUserTeam(ctx, db.AppendUserTeamParams{TeamID: teamID, ID: userID})
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Int64("team_id", teamID).Msg("failed to append team to user")
		return fmt.Errorf("failed to append team: %w", err)
	}
	if n == 0 {
		return domain.NotFound("user profile not found", sql.ErrNoRows)
	}
	return nil
}
