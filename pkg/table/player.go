package table

import (
	"strings"
	"unicode/utf8"

	"literature-server/pkg/deck"
)

const maxNameLength = 32

// Player is the occupant of a seat
type Player struct {
	Seat int
	Name string
	Team int
	Hand deck.Hand
}

// DefaultTeam returns the team a seat belongs to without a shuffle
// Seats 0-2 are team 0 and seats 3-5 are team 1.
func DefaultTeam(seat int) int {
	if seat < Seats/TeamCount {
		return 0
	}

	return 1
}

// OtherTeam returns the opposing team
func OtherTeam(team int) int {
	return 1 - team
}

func newPlayer(seat int, name string) *Player {
	return &Player{
		Seat: seat,
		Name: name,
		Team: DefaultTeam(seat),
		Hand: deck.Hand{},
	}
}

// IsOpponent returns true if the other player is on the other team
func (p *Player) IsOpponent(other *Player) bool {
	return p.Team != other.Team
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", UserError("name cannot be empty")
	}

	if utf8.RuneCountInString(name) > maxNameLength {
		return "", UserError("name cannot be longer than 32 characters")
	}

	return name, nil
}
