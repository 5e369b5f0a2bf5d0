// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/openballot/identity"
	"github.com/danielhkuo/openballot/middleware"
	"github.com/danielhkuo/openballot/models"
	"github.com/danielhkuo/openballot/store"
)

type PollHandler struct {
	store *store.Store
	idp   *identity.Provider
}

func NewPollHandler(s *store.Store, idp *identity.Provider) *PollHandler {
	return &PollHandler{store: s, idp: idp}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	principal := h.idp.CurrentPrincipal(r)

	var input models.PollInput
	if err := middleware.ParseJSONBody(r, &input); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json", "Invalid JSON")
		return
	}

	poll, err := h.store.CreatePoll(r.Context(), principal, input)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// ListPublicPolls handles GET /polls
func (h *PollHandler) ListPublicPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.store.ListPublicPolls(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, polls)
}

// ListMyPolls handles GET /polls/mine. Anonymous callers get an empty list,
// not an error.
func (h *PollHandler) ListMyPolls(w http.ResponseWriter, r *http.Request) {
	principal := h.idp.CurrentPrincipal(r)

	polls, err := h.store.ListOwnedPolls(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	principal := h.idp.CurrentPrincipal(r)

	poll, err := h.store.GetPoll(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// UpdatePoll handles PUT /polls/{id}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	principal := h.idp.CurrentPrincipal(r)

	var input models.PollInput
	if err := middleware.ParseJSONBody(r, &input); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json", "Invalid JSON")
		return
	}

	poll, err := h.store.UpdatePoll(r.Context(), principal, r.PathValue("id"), input)
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	principal := h.idp.CurrentPrincipal(r)

	if err := h.store.DeletePoll(r.Context(), principal, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListVotes handles GET /polls/{id}/votes. Individual votes are disclosed
// under the same read policy as the poll itself.
func (h *PollHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	principal := h.idp.CurrentPrincipal(r)

	votes, err := h.store.ListVotes(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if votes == nil {
		votes = []models.Vote{}
	}
	middleware.JSONResponse(w, http.StatusOK, votes)
}

// GetResults handles GET /polls/{id}/results
func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	principal := h.idp.CurrentPrincipal(r)

	results, err := h.store.Results(r.Context(), principal, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, results)
}
