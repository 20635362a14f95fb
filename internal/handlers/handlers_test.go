package handlers

import (
	"fmt"
	"net/http"
	"testing"

	apperrors "mentormatch/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.ErrOfferingNotFound, http.StatusNotFound},
		{apperrors.ErrUserNotFound, http.StatusNotFound},
		{apperrors.ErrReservationNotFound, http.StatusNotFound},
		{apperrors.ErrNotAvailable, http.StatusConflict},
		{apperrors.ErrFull, http.StatusConflict},
		{apperrors.ErrDuplicateBooking, http.StatusConflict},
		{apperrors.ErrAlreadyPending, http.StatusConflict},
		{apperrors.ErrAlreadyApproved, http.StatusConflict},
		{apperrors.ErrNotPending, http.StatusConflict},
		{apperrors.ErrCodeRetryExhausted, http.StatusConflict},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
		// Wrapped taxonomy errors keep their mapping.
		{fmt.Errorf("booking: %w", apperrors.ErrFull), http.StatusConflict},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, statusFor(tc.err), "error %v", tc.err)
	}
}
