package apperr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beautyshop/internal/apperr"
)

func TestKindSurvivesWrapping(t *testing.T) {
	t.Parallel()

	base := apperr.InsufficientStock("p-1", 5, 2)
	wrapped := fmt.Errorf("place order: %w", base)

	assert.True(t, apperr.Is(wrapped, apperr.KindInsufficientStock))
	e, ok := apperr.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "p-1", e.Subject)
	assert.Contains(t, e.Message, "need 5, have 2")
}

func TestKindOfForeignError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("boom")))
	assert.False(t, apperr.Is(nil, apperr.KindNotFound))
}

func TestUnwrapReachesCause(t *testing.T) {
	t.Parallel()

	err := apperr.Conflict("email already registered", sql.ErrNoRows)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStatusMapping(t *testing.T) {
	t.Parallel()

	cases := map[*apperr.Error]int{
		apperr.Validation("qty", "bad"):                  http.StatusBadRequest,
		apperr.Unauthorized("no"):                        http.StatusUnauthorized,
		apperr.NotFound("order", "o-1"):                  http.StatusNotFound,
		apperr.Conflict("dup", nil):                      http.StatusConflict,
		apperr.InsufficientStock("p", 1, 0):              http.StatusUnprocessableEntity,
		apperr.InvalidTransition("order", "o", "a", "b"): http.StatusUnprocessableEntity,
		apperr.WindowExpired("o-1"):                      http.StatusUnprocessableEntity,
		{Kind: apperr.KindInternal, Message: "internal"}: http.StatusInternalServerError,
	}
	for e, want := range cases {
		assert.Equal(t, want, e.Status(), string(e.Kind))
	}
}
