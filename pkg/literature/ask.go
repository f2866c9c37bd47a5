package literature

import (
	"literature-server/pkg/deck"
	"literature-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

// AskResult is the outcome of a valid ask
type AskResult struct {
	Asker        int
	Target       int
	Card         deck.Card
	Success      bool
	PlayerInTurn int
	Log          []*playable.LogMessage
}

// Ask has the asker request a card from the player named targetName
// Checks run in a fixed order and the first failure is returned with no change
// to the game. On success the card moves to the asker, who stays up. Otherwise
// the turn passes to the target.
func (g *Game) Ask(asker int, targetName string, rank deck.Rank, suit deck.Suit) (*AskResult, error) {
	if !g.gameOn {
		return nil, ErrGameNotInProgress
	}

	from, err := g.table.Player(asker)
	if err != nil {
		return nil, err
	}

	if g.options.EnforceTurn && g.playerInTurn != asker {
		return nil, ErrNotPlayersTurn
	}

	target, ok := g.table.PlayerByName(targetName)
	if !ok {
		return nil, UnknownPlayerError(targetName)
	}

	if target.Seat == from.Seat {
		return nil, ErrCannotAskSelf
	}

	if !from.IsOpponent(target) {
		return nil, ErrCannotAskTeammate
	}

	if rank.IsJoker() && suit != deck.NoSuit {
		return nil, ErrJokerHasNoSuit
	}

	if !rank.IsJoker() && suit == deck.NoSuit {
		return nil, ErrSuitRequired
	}

	card, err := deck.NewCard(rank, suit)
	if err != nil {
		// ranks and suits are parsed at the boundary
		return nil, err
	}

	if from.Hand.HasCard(card) {
		return nil, ErrAlreadyOwnCard
	}

	if !from.Hand.HasBook(card.Book()) {
		return nil, ErrNoCardInBook
	}

	asked := playable.SimpleLogMessage(from.Seat, "%s asked %s for the %s", from.Name, target.Name, card.Name())
	asked.Seats = append(asked.Seats, target.Seat)
	asked.Cards = []deck.Card{card}
	log := []*playable.LogMessage{asked}

	result := &AskResult{
		Asker:  from.Seat,
		Target: target.Seat,
		Card:   card,
	}

	if target.Hand.Discard(card) {
		from.Hand.AddCard(card)
		result.Success = true
		log = append(log, playable.SimpleLogMessage(from.Seat, "The ask succeeded! %s is still up.", from.Name))
	} else {
		g.playerInTurn = target.Seat
		log = append(log, playable.SimpleLogMessage(target.Seat, "The ask failed! %s is now up.", target.Name))
	}

	result.PlayerInTurn = g.playerInTurn
	result.Log = log

	g.logger.WithFields(logrus.Fields{
		"asker":   from.Seat,
		"target":  target.Seat,
		"card":    card.String(),
		"success": result.Success,
	}).Debug("ask")

	return result, nil
}
