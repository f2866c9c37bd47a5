package literature

import (
	"strings"

	"literature-server/pkg/deck"
	"literature-server/pkg/playable"
	"literature-server/pkg/table"

	"github.com/sirupsen/logrus"
)

// DeclareResult is the outcome of a declaration
type DeclareResult struct {
	Declarer int
	Book     deck.Book
	// Team is the team awarded the book
	Team    int
	Success bool
	// GivenUp holds the cards of the book each seat held
	GivenUp map[int][]deck.Card
	Log     []*playable.LogMessage
}

// Declare claims a book for the declarer's team
// Every card of the book leaves every hand. If the other team held any of
// them the book goes to the other team, otherwise to the declarer's team.
func (g *Game) Declare(declarer int, book deck.Book) (*DeclareResult, error) {
	if !g.gameOn {
		return nil, ErrGameNotInProgress
	}

	from, err := g.table.Player(declarer)
	if err != nil {
		return nil, err
	}

	if !book.Valid() {
		return nil, deck.ErrUnknownBook
	}

	if g.IsDeclared(book) {
		return nil, ErrAlreadyDeclared
	}

	log := []*playable.LogMessage{
		playable.SimpleLogMessage(from.Seat, "%s declared the \"%s\" book!", from.Name, book),
	}

	givenUp := make(map[int][]deck.Card)
	var givenByTeam [table.TeamCount]int
	for _, p := range g.table.Players() {
		cards := p.Hand.RemoveBook(book)
		givenUp[p.Seat] = cards
		givenByTeam[p.Team] += len(cards)

		if len(cards) == 0 {
			log = append(log, playable.SimpleLogMessage(p.Seat, "%s gave up no cards", p.Name))
			continue
		}

		names := make([]string, len(cards))
		for i, c := range cards {
			names[i] = c.Name()
		}

		msg := playable.SimpleLogMessage(p.Seat, "%s gave up %s", p.Name, strings.Join(names, ", "))
		msg.Cards = cards
		log = append(log, msg)
	}

	result := &DeclareResult{
		Declarer: from.Seat,
		Book:     book,
		GivenUp:  givenUp,
	}

	otherTeam := table.OtherTeam(from.Team)
	if givenByTeam[otherTeam] > 0 {
		result.Team = otherTeam
		log = append(log, playable.SimpleLogMessage(-1, "Declaration failed! The \"%s\" book goes to Team %d", book, otherTeam+1))
	} else {
		result.Team = from.Team
		result.Success = true
		log = append(log, playable.SimpleLogMessage(-1, "Declaration successful! The \"%s\" book goes to Team %d", book, from.Team+1))
	}

	g.books[result.Team] = append(g.books[result.Team], book)
	result.Log = log

	g.logger.WithFields(logrus.Fields{
		"declarer": from.Seat,
		"book":     book.String(),
		"team":     result.Team,
		"success":  result.Success,
	}).Info("book declared")

	return result, nil
}
