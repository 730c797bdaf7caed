package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	cause := errors.New("disk on fire")
	err := fmt.Errorf("registering: %w", NotFound("league not found", cause))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, "registering: league not found: disk on fire", err.Error())
}

func TestKindOfReportsOutermostKind(t *testing.T) {
	inner := Conflict("team display order already exists", nil)
	outer := External("try again", inner)

	assert.ErrorIs(t, outer, ErrConflict)
	assert.Equal(t, ErrExternalService, KindOf(outer))
	assert.Equal(t, ErrConflict, KindOf(inner))
	assert.Nil(t, KindOf(errors.New("plain")))
}

func TestMessage(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Validation("Please select a skill level"))
	assert.Equal(t, "Please select a skill level", Message(err, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
}

func TestErrorWith(t *testing.T) {
	err := External("roster failed", nil).With("team_id", "42")
	assert.Equal(t, map[string]string{"team_id": "42"}, err.Context)
}
