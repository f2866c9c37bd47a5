package mux

import (
	"context"
	"net/http"

	gmux "github.com/gorilla/mux"
	"literature-server/pkg/record"
	"literature-server/pkg/room"
)

// GameLister returns finished games, newest first
type GameLister interface {
	Recent(ctx context.Context, start int64, rows int) ([]*record.Game, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	dealer  *room.Dealer
	games   GameLister
}

// NewMux returns a new HTTP mux
// games may be nil when no database is configured
func NewMux(version string, dealer *room.Dealer, games GameLister) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		dealer:  dealer,
		games:   games,
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())
	r.Methods(http.MethodGet).Path("/state").Handler(this.getState())
	r.Methods(http.MethodGet).Path("/games").Handler(this.getGames())

	return this
}
