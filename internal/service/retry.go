package service

import (
	"context"
	"time"

	"league-registration/internal/constants"
	"league-registration/internal/domain"

	"github.com/rs/zerolog"
)

// retryOnConflict runs fn until it returns something other than a conflict,
// up to ConflictRetryAttempts times. Exhausting the budget is reported as an
// external-service failure carrying the last conflict.
func retryOnConflict(ctx context.Context, logger zerolog.Logger, op string, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 1; attempt <= constants.ConflictRetryAttempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		if domain.KindOf(err) != domain.ErrConflict {
			return err
		}
		lastErr = err

		logger.Debug().Err(err).Str("op", op).Int("attempt", attempt).Msg("conflict, retrying")

		if attempt == constants.ConflictRetryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * constants.ConflictRetryBackoff):
		}
	}

	logger.Warn().Err(lastErr).Str("op", op).Msg("conflict retries exhausted")
	return domain.External("The request conflicted with a concurrent update, please try again", lastErr)
}
