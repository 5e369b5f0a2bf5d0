// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/openballot/middleware"
	"github.com/danielhkuo/openballot/models"
)

// respondError maps a core error onto an HTTP status and taxonomy code.
// Only mapped kinds and display-safe messages reach the response body.
func respondError(w http.ResponseWriter, err error) {
	if ve, ok := models.IsValidation(err); ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, ve.Kind, ve.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, models.ErrSessionExpired):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "session_expired", err.Error())
	case errors.Is(err, models.ErrForbidden):
		middleware.ErrorResponse(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, models.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid_option", err.Error())
	case errors.Is(err, models.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "duplicate_vote", err.Error())
	case errors.Is(err, models.ErrUsernameTaken):
		middleware.ErrorResponse(w, http.StatusConflict, "username_taken", err.Error())
	case errors.Is(err, models.ErrStoreUnavailable):
		// Retryable: the caller may back off and resubmit.
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
