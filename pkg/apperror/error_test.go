package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"jobmatch-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestKindsCarryStatus(t *testing.T) {
	cases := []struct {
		err  *apperror.AppError
		kind apperror.Kind
		code int
	}{
		{apperror.Unauthenticated("x"), apperror.KindUnauthenticated, http.StatusUnauthorized},
		{apperror.UserNotFound("x"), apperror.KindUserNotFound, http.StatusNotFound},
		{apperror.Forbidden("x"), apperror.KindForbidden, http.StatusForbidden},
		{apperror.NotFound("x"), apperror.KindNotFound, http.StatusNotFound},
		{apperror.Validation("x", nil), apperror.KindValidation, http.StatusUnprocessableEntity},
		{apperror.DuplicateApplication("x"), apperror.KindDuplicateApplication, http.StatusConflict},
		{apperror.SelfApplicationForbidden("x"), apperror.KindSelfApplicationForbidden, http.StatusForbidden},
		{apperror.Persistence("x", nil), apperror.KindPersistence, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.err.Kind)
			assert.Equal(t, tc.code, tc.err.Code)
			assert.True(t, apperror.Is(tc.err, tc.kind))
		})
	}
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("create: %w", apperror.Persistence("db failed", cause))

	assert.True(t, apperror.Is(err, apperror.KindPersistence))
	assert.False(t, apperror.Is(err, apperror.KindNotFound))
	assert.ErrorIs(t, err, cause)
	assert.False(t, apperror.Is(cause, apperror.KindPersistence))
}
