// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/openballot/cliparse"
	"github.com/danielhkuo/openballot/handlers"
	"github.com/danielhkuo/openballot/identity"
	"github.com/danielhkuo/openballot/middleware"
	"github.com/danielhkuo/openballot/store"
	"github.com/danielhkuo/openballot/voting"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Wire the core: one store gateway, one voting engine, one identity
	// provider backed by the store's session table.
	st := store.New(db)
	idp := identity.NewProvider(st)
	engine := voting.NewEngine(st)

	authHandler := handlers.NewAuthHandler(st, idp, cfg)
	pollHandler := handlers.NewPollHandler(st, idp)
	votingHandler := handlers.NewVotingHandler(engine, idp)
	adminHandler := handlers.NewAdminHandler(idp)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts and sessions
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(authHandler.Me))
	mux.HandleFunc("GET /auth/session", middleware.WithLogging(authHandler.Session))

	// Poll management
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPublicPolls))
	mux.HandleFunc("GET /polls/mine", middleware.WithLogging(pollHandler.ListMyPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("PUT /polls/{id}", middleware.WithLogging(pollHandler.UpdatePoll))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))

	// Voting and results
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("GET /polls/{id}/votes", middleware.WithLogging(pollHandler.ListVotes))
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(pollHandler.GetResults))

	// Administrative view gate
	mux.HandleFunc("GET /admin", middleware.WithLogging(adminHandler.Route))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("openballot API v1"))
	})

	return mux
}
