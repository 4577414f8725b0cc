package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomyMapping(t *testing.T) {
	cases := []struct {
		err      error
		category string
		status   int
	}{
		{NotFound("post"), "not_found", http.StatusNotFound},
		{Conflict("already following"), "conflict", http.StatusConflict},
		{Forbidden("not the author"), "forbidden", http.StatusForbidden},
		{InvalidInput("text required"), "invalid_input", http.StatusBadRequest},
		{Unauthorized("missing token"), "unauthorized", http.StatusUnauthorized},
		{errors.New("boom"), "internal", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.category, func(t *testing.T) {
			assert.Equal(t, tc.category, Category(tc.err))
			assert.Equal(t, tc.status, HTTPStatus(tc.err))
		})
	}
}

func TestErrorsIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("while deleting: %w", Forbidden("only the author may delete this post"))
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestMessageIsHumanReadable(t *testing.T) {
	err := NotFound("club")
	assert.Equal(t, "club not found", err.Error())
}
