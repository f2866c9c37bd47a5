package room

import (
	"errors"

	"literature-server/pkg/literature"
	"literature-server/pkg/playable"
	"literature-server/pkg/table"
)

// outbound event names
const (
	keyPlayerNumber      = "player-number"
	keyTeams             = "teams"
	keyMessage           = "message"
	keyAskFailed         = "ask-failed"
	keyStartGameResponse = "start-game-response"
	keyGetHandResponse   = "get-hand-response"
	keyError             = "error"
)

// start-game-response codes
const (
	startOK               = 1
	startNotEnoughPlayers = -1
	startAlreadyRunning   = -2
)

// startCode maps the result of StartGame to the code the client expects
func startCode(err error) int {
	switch {
	case err == nil:
		return startOK
	case errors.Is(err, literature.ErrNotEnoughPlayers):
		return startNotEnoughPlayers
	case errors.Is(err, literature.ErrGameAlreadyRunning):
		return startAlreadyRunning
	}

	return startNotEnoughPlayers
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     keyError,
		Value:   err.Error(),
		Context: ctx,
	}
}

func newAskFailedResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     keyAskFailed,
		Value:   err.Error(),
		Context: ctx,
	}
}

// SpectatorState is what anyone may see of the table
// Hands are never included.
type SpectatorState struct {
	Teams        [table.TeamCount][]string `json:"teams"`
	Running      bool                      `json:"running"`
	PlayerInTurn int                       `json:"playerInTurn"`
	Books        [table.TeamCount][]string `json:"books"`
	GameOver     bool                      `json:"gameOver"`
	Winner       *int                      `json:"winner,omitempty"`
	Clients      int                       `json:"clients"`
	Log          []*playable.LogMessage    `json:"log"`
}

// NOTE: must only be called from the run loop
func (d *Dealer) spectatorState() *SpectatorState {
	state := d.game.State("")
	return &SpectatorState{
		Teams:        d.game.Teams(),
		Running:      d.game.IsRunning(),
		PlayerInTurn: state.PlayerInTurn,
		Books:        state.Books,
		GameOver:     state.GameOver,
		Winner:       state.Winner,
		Clients:      len(d.clients),
		Log:          append([]*playable.LogMessage{}, d.logMessages...),
	}
}
