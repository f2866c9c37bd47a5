package literature

import (
	"literature-server/pkg/deck"
	"literature-server/pkg/table"
)

// GameState is the payload of every broadcast "message" event
// This is safe for all players to see. It carries the full turn and book
// snapshot so a client that missed a message catches up on the next one.
type GameState struct {
	Message      string                    `json:"message"`
	PlayerInTurn int                       `json:"playerInTurn"`
	Books        [table.TeamCount][]string `json:"books"`
	GameOver     bool                      `json:"gameOver"`
	Winner       *int                      `json:"winner,omitempty"`
}

// HandState is the private payload of "get-hand-response"
type HandState struct {
	Names []string `json:"names"`
	Codes []string `json:"codes"`
}

// State returns the public state with the narration message attached
func (g *Game) State(message string) *GameState {
	state := &GameState{
		Message:      message,
		PlayerInTurn: g.playerInTurn,
		Books: [table.TeamCount][]string{
			deck.BookNames(g.books[0]),
			deck.BookNames(g.books[1]),
		},
	}

	if team, isOver := g.IsGameOver(); isOver {
		state.GameOver = true
		state.Winner = &team
	}

	return state
}

// HandState returns the seat's hand as display names and compact codes
func (g *Game) HandState(seat int) (*HandState, error) {
	hand, err := g.Hand(seat)
	if err != nil {
		return nil, err
	}

	return &HandState{
		Names: hand.Names(),
		Codes: hand.Codes(),
	}, nil
}
