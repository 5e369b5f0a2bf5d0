// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/openballot/auth"
	"github.com/danielhkuo/openballot/cliparse"
	"github.com/danielhkuo/openballot/identity"
	"github.com/danielhkuo/openballot/middleware"
	"github.com/danielhkuo/openballot/models"
	"github.com/danielhkuo/openballot/store"
	"github.com/danielhkuo/openballot/validation"
)

type AuthHandler struct {
	store *store.Store
	idp   *identity.Provider
	cfg   cliparse.Config
}

func NewAuthHandler(s *store.Store, idp *identity.Provider, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{store: s, idp: idp, cfg: cfg}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json", "Invalid JSON")
		return
	}

	if err := validation.Username(req.Username); err != nil {
		respondError(w, err)
		return
	}
	if err := validation.Password(req.Password); err != nil {
		respondError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, models.ErrInternal)
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Username, hash, models.RoleUser)
	if err != nil {
		respondError(w, err)
		return
	}

	session, err := h.store.CreateSession(r.Context(), user.ID, h.cfg.SessionTTL)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{
		Token: session.Token,
		User:  user,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json", "Invalid JSON")
		return
	}

	user, hash, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if errors.Is(err, models.ErrNotFound) {
		// Unknown user and wrong password are indistinguishable to callers.
		respondError(w, models.ErrInvalidCredentials)
		return
	}
	if err != nil {
		// Store failures keep their own taxonomy; a retryable outage must
		// not masquerade as a terminal credential rejection.
		respondError(w, err)
		return
	}
	if !auth.CheckPassword(hash, req.Password) {
		respondError(w, models.ErrInvalidCredentials)
		return
	}

	session, err := h.store.CreateSession(r.Context(), user.ID, h.cfg.SessionTTL)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		Token: session.Token,
		User:  user,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := identity.BearerToken(r)
	if token == "" {
		respondError(w, models.ErrUnauthenticated)
		return
	}

	if err := h.store.DeleteSession(r.Context(), token); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me - the current user record
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := h.idp.CurrentPrincipal(r)
	if principal.IsAnonymous() {
		respondError(w, models.ErrUnauthenticated)
		return
	}

	user, err := h.store.GetUser(r.Context(), principal.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// Session handles GET /auth/session - the current session record
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	token := identity.BearerToken(r)
	if token == "" {
		respondError(w, models.ErrUnauthenticated)
		return
	}

	session, err := h.store.GetSession(r.Context(), token)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	})
}
