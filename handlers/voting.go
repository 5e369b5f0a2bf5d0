// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/openballot/identity"
	"github.com/danielhkuo/openballot/middleware"
	"github.com/danielhkuo/openballot/models"
	"github.com/danielhkuo/openballot/voting"
)

type VotingHandler struct {
	engine *voting.Engine
	idp    *identity.Provider
}

func NewVotingHandler(engine *voting.Engine, idp *identity.Provider) *VotingHandler {
	return &VotingHandler{engine: engine, idp: idp}
}

// SubmitVote handles POST /polls/{id}/votes
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	principal := h.idp.CurrentPrincipal(r)

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bad_json", "Invalid JSON")
		return
	}

	vote, err := h.engine.SubmitVote(r.Context(), principal, r.PathValue("id"), req.OptionIndex)
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, vote)
}
