package literature

import (
	"errors"
	"fmt"
)

// The text of these errors is shown to players as-is.

// ErrNotEnoughPlayers is returned when a game is started without six seated players
var ErrNotEnoughPlayers = errors.New("Need 6 players to start!")

// ErrGameAlreadyRunning is returned when restarting a running game is disabled
var ErrGameAlreadyRunning = errors.New("Game is already on.")

// ErrGameNotInProgress is returned when asking or declaring before a game started
var ErrGameNotInProgress = errors.New("The game has not started!")

// ErrNotPlayersTurn is returned when turn enforcement is on and someone else is up
var ErrNotPlayersTurn = errors.New("It is not your turn!")

// ErrCannotAskSelf is returned when a player asks themselves for a card
var ErrCannotAskSelf = errors.New("Cannot ask self for card!")

// ErrCannotAskTeammate is returned when the target is on the asker's team
var ErrCannotAskTeammate = errors.New("Cannot ask teammate for a card!")

// ErrJokerHasNoSuit is returned when a suit is given with a joker
var ErrJokerHasNoSuit = errors.New("Cannot give a suit when asking for a joker!")

// ErrSuitRequired is returned when a non-joker is asked for without a suit
var ErrSuitRequired = errors.New("Cannot ask for a card without a suit!")

// ErrAlreadyOwnCard is returned when the asker already holds the card
var ErrAlreadyOwnCard = errors.New("Cannot ask for a card that you own!")

// ErrNoCardInBook is returned when the asker holds nothing from the card's book
var ErrNoCardInBook = errors.New("Cannot ask for a card if you don't have a card from that book!")

// ErrAlreadyDeclared is returned when a book is declared a second time
var ErrAlreadyDeclared = errors.New("Book has already been declared!")

// UnknownPlayerError is returned when the ask target matches no seated player
type UnknownPlayerError string

func (u UnknownPlayerError) Error() string {
	return fmt.Sprintf("Failed to get player %s", string(u))
}
