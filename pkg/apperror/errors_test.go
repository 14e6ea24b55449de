package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"bad request", ErrBadRequest, http.StatusBadRequest},
		{"conflict", ErrConflict, http.StatusConflict},
		{"invalid reference", ErrInvalidReference, http.StatusUnprocessableEntity},
		{"unprocessable", ErrUnprocessable, http.StatusUnprocessableEntity},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("query failed: %w", ErrNotFound), http.StatusNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"wrapped duplicated key", fmt.Errorf("insert failed: %w", gorm.ErrDuplicatedKey), http.StatusConflict},
		{"foreign key violation", gorm.ErrForeignKeyViolated, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatus(tt.err))
		})
	}
}

func TestAppErrorCodeTakesPrecedence(t *testing.T) {
	err := New(http.StatusConflict, "Username already taken", ErrConflict)
	assert.Equal(t, http.StatusConflict, MapErrorToStatus(err))

	// The explicit code wins even when it disagrees with the sentinel.
	err = New(http.StatusUnprocessableEntity, "Category does not exist", ErrInvalidReference)
	assert.Equal(t, http.StatusUnprocessableEntity, MapErrorToStatus(err))
}

func TestAppErrorUnwrap(t *testing.T) {
	err := New(http.StatusNotFound, "Medicine not found", ErrNotFound)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, ErrNotFound.Error(), err.Error())
}
