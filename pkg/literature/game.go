package literature

import (
	"literature-server/internal/rng"
	"literature-server/pkg/deck"
	"literature-server/pkg/playable"
	"literature-server/pkg/table"

	"github.com/sirupsen/logrus"
)

// cardsPerHand is how many cards each seat is dealt
const cardsPerHand = deck.Size / table.Seats

// booksToWin is the number of books a team must exceed to win
const booksToWin = deck.BookCount / 2

// noTurn is the turn pointer before the first game
const noTurn = -1

// Game is the authoritative state of a table of Literature
// Game is not safe for concurrent use. Every call must come from a single
// goroutine (the dealer's run loop) or be serialized by the caller.
type Game struct {
	options Options
	table   *table.Table
	deck    *deck.Deck
	rng     rng.Generator
	logger  logrus.FieldLogger

	gameOn       bool
	playerInTurn int
	books        [table.TeamCount][]deck.Book
}

// NewGame returns a game with an empty table
func NewGame(logger logrus.FieldLogger, r rng.Generator, options Options) *Game {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if r == nil {
		r = rng.Crypto{}
	}

	return &Game{
		options:      options,
		table:        table.New(),
		deck:         deck.New(),
		rng:          r,
		logger:       logger,
		playerInTurn: noTurn,
		books:        [table.TeamCount][]deck.Book{{}, {}},
	}
}

// Join seats a new player
// Returns table.ErrTableFull when all six seats are taken
func (g *Game) Join() (*table.Player, error) {
	p, err := g.table.Join()
	if err != nil {
		return nil, err
	}

	g.logger.WithFields(logrus.Fields{
		"seat": p.Seat,
		"name": p.Name,
		"team": p.Team,
	}).Info("player joined")
	return p, nil
}

// SetName sets the display name of the seat
func (g *Game) SetName(seat int, name string) error {
	return g.table.SetName(seat, name)
}

// Leave vacates the seat
// The player's hand is discarded and the remaining hands are untouched.
func (g *Game) Leave(seat int) (*table.Player, error) {
	p, err := g.table.Leave(seat)
	if err != nil {
		return nil, err
	}

	log := g.logger.WithField("seat", seat)
	if g.gameOn && len(p.Hand) > 0 {
		log = log.WithField("discarded", p.Hand.String())
	}

	log.Info("player left")
	return p, nil
}

// ShuffleTeams randomly reassigns the seated players to two teams of three
func (g *Game) ShuffleTeams() {
	g.table.ShuffleTeams(g.rng)
	g.logger.WithField("teams", g.table.Teams()).Info("teams shuffled")
}

// Teams returns the names on each team
func (g *Game) Teams() [table.TeamCount][]string {
	return g.table.Teams()
}

// Players returns the seated players
func (g *Game) Players() []*table.Player {
	return g.table.Players()
}

// Player returns the player in the seat
func (g *Game) Player(seat int) (*table.Player, error) {
	return g.table.Player(seat)
}

// IsRunning returns true once a game has been dealt
func (g *Game) IsRunning() bool {
	return g.gameOn
}

// PlayerInTurn returns the seat that is up, or -1 before the first game
func (g *Game) PlayerInTurn() int {
	return g.playerInTurn
}

// Books returns the books the team owns in the order they were won
func (g *Game) Books(team int) []deck.Book {
	return append([]deck.Book{}, g.books[team]...)
}

// IsDeclared returns true if either team owns the book
func (g *Game) IsDeclared(book deck.Book) bool {
	return g.bookOwner(book) >= 0
}

func (g *Game) bookOwner(book deck.Book) int {
	for team, books := range g.books {
		for _, b := range books {
			if b == book {
				return team
			}
		}
	}

	return -1
}

// IsGameOver returns the winning team once a team holds a majority of the books
// This is advisory: actions are still accepted afterward.
func (g *Game) IsGameOver() (team int, isOver bool) {
	for team, books := range g.books {
		if len(books) > booksToWin {
			return team, true
		}
	}

	return -1, false
}

// Hand returns the player's hand in book order
func (g *Game) Hand(seat int) (deck.Hand, error) {
	p, err := g.table.Player(seat)
	if err != nil {
		return nil, err
	}

	return p.Hand.Sorted(), nil
}

// StartGame deals a new game
// Requires six seated players. A running game is restarted unless
// Options.RestartRunningGame is false.
func (g *Game) StartGame() ([]*playable.LogMessage, error) {
	if !g.table.IsFull() {
		return nil, ErrNotEnoughPlayers
	}

	if g.gameOn && !g.options.RestartRunningGame {
		return nil, ErrGameAlreadyRunning
	}

	g.books = [table.TeamCount][]deck.Book{{}, {}}
	g.deck.Shuffle(g.rng)
	deckHash := g.deck.HashCode()

	for _, p := range g.table.Players() {
		hand := make(deck.Hand, 0, cardsPerHand)
		for i := 0; i < cardsPerHand; i++ {
			card, err := g.deck.Draw()
			if err != nil {
				// 54 cards always deal evenly to 6 seats
				panic(err)
			}

			hand = append(hand, card)
		}

		p.Hand = hand
	}

	g.gameOn = true
	g.playerInTurn = g.rng.Intn(table.Seats)

	g.logger.WithFields(logrus.Fields{
		"deck":         deckHash,
		"playerInTurn": g.playerInTurn,
	}).Info("game started")

	return []*playable.LogMessage{
		playable.SimpleLogMessage(-1, "Game Started!"),
		playable.SimpleLogMessage(g.playerInTurn, "Player %s is up", g.name(g.playerInTurn)),
	}, nil
}

// name returns the display name of a seat, or Nobody if it is vacant
func (g *Game) name(seat int) string {
	p, err := g.table.Player(seat)
	if err != nil {
		return "Nobody"
	}

	return p.Name
}
