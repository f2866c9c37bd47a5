package room

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"literature-server/pkg/deck"
	"literature-server/pkg/playable"
)

// inbound event names
const (
	actionSetName      = "set-name"
	actionStartGame    = "start-game"
	actionShuffleTeams = "shuffle-teams"
	actionGetHand      = "get-hand"
	actionAskForCard   = "ask-for-card"
	actionDeclare      = "declare"
)

// ErrUnknownAction is sent back for an action the server does not handle
var ErrUnknownAction = errors.New("unknown action")

// NOTE: must only be called from the run loop
func (d *Dealer) handleMessage(c *Client, msg *playable.PayloadIn) {
	if !d.clients[c] {
		d.logger.WithField("client", c.ID).Warn("message from a client without a seat")
		return
	}

	log := d.logger.WithFields(logrus.Fields{
		"client": c.String(),
		"action": msg.Action,
	})
	log.Trace("received message")

	switch msg.Action {
	case actionSetName:
		if err := d.game.SetName(c.seat, msg.Subject); err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		d.sendTeams()
	case actionStartGame:
		messages, err := d.game.StartGame()
		c.Send(&playable.Response{
			Key:     keyStartGameResponse,
			Data:    startCode(err),
			Context: msg.Context,
		})

		if err != nil {
			log.WithError(err).Debug("could not start game")
			return
		}

		d.newGame()
		for _, m := range messages {
			d.sendNarration([]*playable.LogMessage{m})
		}
	case actionShuffleTeams:
		d.game.ShuffleTeams()
		d.sendTeams()
	case actionGetHand:
		hand, err := d.game.HandState(c.seat)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(&playable.Response{
			Key:     keyGetHandResponse,
			Data:    hand,
			Context: msg.Context,
		})
	case actionAskForCard:
		d.askForCard(c, msg)
	case actionDeclare:
		d.declare(c, msg)
	default:
		log.Warn("unknown message")
		c.Send(newErrorResponse(msg.Context, fmt.Errorf("%w: %s", ErrUnknownAction, msg.Action)))
	}
}

// askForCard expects the target's name in "player", the rank's display name
// in "rank" and the suit's display name in "suit", which is empty for a joker
func (d *Dealer) askForCard(c *Client, msg *playable.PayloadIn) {
	target, _ := msg.AdditionalData.GetString("player")
	rankName, _ := msg.AdditionalData.GetString("rank")
	suitName, _ := msg.AdditionalData.GetString("suit")

	rank, err := deck.RankFromName(rankName)
	if err != nil {
		c.Send(newAskFailedResponse(msg.Context, err))
		return
	}

	suit, err := deck.SuitFromName(suitName)
	if err != nil {
		c.Send(newAskFailedResponse(msg.Context, err))
		return
	}

	result, err := d.game.Ask(c.seat, target, rank, suit)
	if err != nil {
		c.Send(newAskFailedResponse(msg.Context, err))
		return
	}

	d.sendNarration(result.Log)
}

// declare expects the book's display name as the subject
func (d *Dealer) declare(c *Client, msg *playable.PayloadIn) {
	book, err := deck.BookFromName(msg.Subject)
	if err != nil {
		c.Send(newAskFailedResponse(msg.Context, err))
		return
	}

	result, err := d.game.Declare(c.seat, book)
	if err != nil {
		c.Send(newAskFailedResponse(msg.Context, err))
		return
	}

	d.sendNarration(result.Log)
	d.recordIfOver()
}
