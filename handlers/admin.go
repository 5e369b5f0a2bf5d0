// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/openballot/identity"
	"github.com/danielhkuo/openballot/middleware"
	"github.com/danielhkuo/openballot/models"
	"github.com/danielhkuo/openballot/policy"
)

type AdminHandler struct {
	idp *identity.Provider
}

func NewAdminHandler(idp *identity.Provider) *AdminHandler {
	return &AdminHandler{idp: idp}
}

// Route handles GET /admin. Admins get 200; everyone else a temporary
// redirect to where they belong (login for anonymous, home otherwise).
// The admin role gates this view only; poll data access is unchanged.
func (h *AdminHandler) Route(w http.ResponseWriter, r *http.Request) {
	principal := h.idp.CurrentPrincipal(r)

	decision := policy.RouteAdmin(principal)
	if decision.Authorized {
		middleware.JSONResponse(w, http.StatusOK, models.AdminRouteResponse{Authorized: true})
		return
	}

	w.Header().Set("Location", decision.RedirectTo)
	middleware.JSONResponse(w, http.StatusTemporaryRedirect, models.AdminRouteResponse{
		Authorized: false,
		RedirectTo: decision.RedirectTo,
	})
}
