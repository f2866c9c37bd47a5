package record

import (
	"context"
	"errors"
	"time"

	"literature-server/pkg/playable"
	"literature-server/pkg/table"
)

// ErrDuplicateRecord is returned when a game is saved twice
var ErrDuplicateRecord = errors.New("game has already been recorded")

// Game is the result of a finished game
type Game struct {
	UUID    string                    `json:"uuid"`
	Teams   [table.TeamCount][]string `json:"teams"`
	Books   [table.TeamCount][]string `json:"books"`
	Winner  int                       `json:"winner"`
	Log     []*playable.LogMessage    `json:"log"`
	Started time.Time                 `json:"started"`
	Ended   time.Time                 `json:"ended"`
}

// Store saves finished games
type Store interface {
	Save(ctx context.Context, game *Game) error
}

// Discard is a Store that drops every game
// Used when no database is configured
type Discard struct{}

// Save implements Store
func (Discard) Save(context.Context, *Game) error {
	return nil
}
