package table

import (
	"literature-server/internal/rng"
	"literature-server/internal/util"
)

// Seats is the number of seats at a table
const Seats = 6

// TeamCount is the number of teams
const TeamCount = 2

// Table is the seat registry
// A seat is a nil pointer when vacant. Table is not safe for concurrent use;
// the owner must serialize access.
type Table struct {
	seats [Seats]*Player

	// defaultName produces the name for a new player
	defaultName func() string
}

// New returns an empty table
func New() *Table {
	return &Table{
		defaultName: util.GetRandomName,
	}
}

// Join seats a new player in the first vacant seat
func (t *Table) Join() (*Player, error) {
	for i, p := range t.seats {
		if p == nil {
			player := newPlayer(i, t.defaultName())
			t.seats[i] = player
			return player, nil
		}
	}

	return nil, ErrTableFull
}

// Player returns the player in the seat
func (t *Table) Player(seat int) (*Player, error) {
	if seat < 0 || seat >= Seats {
		return nil, InvalidSeatError(seat)
	}

	p := t.seats[seat]
	if p == nil {
		return nil, ErrSeatVacant
	}

	return p, nil
}

// SetName sets the display name of the player in the seat
func (t *Table) SetName(seat int, name string) error {
	p, err := t.Player(seat)
	if err != nil {
		return err
	}

	name, err = cleanName(name)
	if err != nil {
		return err
	}

	p.Name = name
	return nil
}

// Leave vacates the seat and returns who was sitting there
// The player's hand leaves with them.
func (t *Table) Leave(seat int) (*Player, error) {
	p, err := t.Player(seat)
	if err != nil {
		return nil, err
	}

	t.seats[seat] = nil
	return p, nil
}

// ShuffleTeams draws a random split of three and three
// Only occupied seats are reassigned. A player who later fills a vacant seat
// gets the default team for that seat.
func (t *Table) ShuffleTeams(r rng.Generator) {
	teams := []int{0, 0, 0, 1, 1, 1}
	rng.Shuffle(r, len(teams), func(i, j int) {
		teams[i], teams[j] = teams[j], teams[i]
	})

	for i, p := range t.seats {
		if p == nil {
			continue
		}

		p.Team = teams[i]
	}
}

// PlayerByName returns the first player in seat order with the name
func (t *Table) PlayerByName(name string) (*Player, bool) {
	for _, p := range t.seats {
		if p != nil && p.Name == name {
			return p, true
		}
	}

	return nil, false
}

// Players returns the seated players in seat order
func (t *Table) Players() []*Player {
	players := make([]*Player, 0, Seats)
	for _, p := range t.seats {
		if p != nil {
			players = append(players, p)
		}
	}

	return players
}

// IsFull returns true if every seat is taken
func (t *Table) IsFull() bool {
	for _, p := range t.seats {
		if p == nil {
			return false
		}
	}

	return true
}

// Teams returns the player names of each team in seat order
func (t *Table) Teams() [TeamCount][]string {
	teams := [TeamCount][]string{{}, {}}
	for _, p := range t.Players() {
		teams[p.Team] = append(teams[p.Team], p.Name)
	}

	return teams
}
