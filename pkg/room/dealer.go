package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"literature-server/internal/rng"
	"literature-server/pkg/literature"
	"literature-server/pkg/playable"
	"literature-server/pkg/record"
)

// ErrShiftEnded is returned when the dealer's run loop has stopped
var ErrShiftEnded = errors.New("dealer shift has ended")

// saveTimeout bounds how long a finished game may take to record
const saveTimeout = time.Second * 10

// Options configure a dealer
type Options struct {
	Game           literature.Options
	MessageBacklog int
	Store          record.Store
	Logger         logrus.FieldLogger
	Rand           rng.Generator
}

// Dealer is responsible for controlling the game
// Every read and write of the game happens on the run loop goroutine.
type Dealer struct {
	game    *literature.Game
	store   record.Store
	logger  logrus.FieldLogger
	clients map[*Client]bool

	// logMessages is the rolling narration shown to spectators
	logMessages    []*playable.LogMessage
	messageBacklog int

	// current game, for the record
	gameUUID string
	started  time.Time
	gameLog  []*playable.LogMessage
	recorded bool

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
func NewDealer(opts Options) *Dealer {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	if opts.Store == nil {
		opts.Store = record.Discard{}
	}

	if opts.MessageBacklog <= 0 {
		opts.MessageBacklog = defaultMessageBacklog
	}

	return &Dealer{
		game:           literature.NewGame(opts.Logger, opts.Rand, opts.Game),
		store:          opts.Store,
		logger:         opts.Logger,
		clients:        make(map[*Client]bool),
		messageBacklog: opts.MessageBacklog,
		execInRunLoop:  make(chan func(), 256),
		close:          make(chan bool),
	}
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift stops the run loop
// Calling it more than once is a no-op.
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

func (d *Dealer) shiftEnded() bool {
	select {
	case <-d.close:
		return true
	default:
		return false
	}
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient seats a newly connected client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	client.dealer = d
	d.exec(func() {
		d.addClient(client)
	})
}

// RemoveClient vacates the client's seat
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) {
	d.exec(func() {
		d.removeClient(client)
	})
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.exec(func() {
		d.handleMessage(c, msg)
	})
}

// exec queues fn on the run loop, or drops it once the shift has ended
func (d *Dealer) exec(fn func()) bool {
	if d.shiftEnded() {
		return false
	}

	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// Spectate returns the public table state
func (d *Dealer) Spectate(ctx context.Context) (*SpectatorState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if d.shiftEnded() {
		return nil, ErrShiftEnded
	}

	result := make(chan *SpectatorState, 1)
	select {
	case d.execInRunLoop <- func() { result <- d.spectatorState() }:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.close:
		return nil, ErrShiftEnded
	}

	select {
	case state := <-result:
		return state, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.close:
		return nil, ErrShiftEnded
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) addClient(c *Client) {
	p, err := d.game.Join()
	if err != nil {
		d.logger.WithField("client", c.ID).WithError(err).Info("turning away client")
		c.Send(&playable.Response{Key: keyPlayerNumber, Data: noSeat})
		c.requestClose(err.Error())
		return
	}

	c.seat = p.Seat
	d.clients[c] = true

	c.Send(&playable.Response{Key: keyPlayerNumber, Data: p.Seat})
	d.sendTeams()
}

// NOTE: must only be called from the run loop
func (d *Dealer) removeClient(c *Client) {
	if !d.clients[c] {
		return
	}

	delete(d.clients, c)
	if _, err := d.game.Leave(c.seat); err != nil {
		d.logger.WithField("client", c.String()).WithError(err).Error("could not vacate seat")
	}

	d.sendTeams()
}

// broadcast sends the message to every client
// A client whose buffer is full misses it and catches up on the next state.
func (d *Dealer) broadcast(msg interface{}) {
	for client := range d.clients {
		if !client.Send(msg) {
			d.logger.WithField("client", client.String()).Warn("client buffer full, dropping message")
		}
	}
}

func (d *Dealer) sendTeams() {
	d.broadcast(&playable.Response{
		Key:  keyTeams,
		Data: d.game.Teams(),
	})
}

// sendNarration records the messages and broadcasts them with the game state
func (d *Dealer) sendNarration(messages []*playable.LogMessage) {
	d.addLogMessages(messages)
	d.gameLog = append(d.gameLog, messages...)
	d.broadcast(&playable.Response{
		Key:  keyMessage,
		Data: d.game.State(playable.Narration(messages)),
	})
}

// newGame resets the record of the current game
func (d *Dealer) newGame() {
	d.gameUUID = uuid.New().String()
	d.started = time.Now()
	d.gameLog = nil
	d.recorded = false
}

// recordIfOver hands the game to the store the first time it is decided
func (d *Dealer) recordIfOver() {
	winner, isOver := d.game.IsGameOver()
	if !isOver || d.recorded {
		return
	}

	d.recorded = true
	game := &record.Game{
		UUID:    d.gameUUID,
		Teams:   d.game.Teams(),
		Winner:  winner,
		Log:     append([]*playable.LogMessage{}, d.gameLog...),
		Started: d.started,
		Ended:   time.Now(),
	}

	state := d.game.State("")
	game.Books = state.Books

	log := d.logger.WithFields(logrus.Fields{
		"uuid":   game.UUID,
		"winner": winner,
	})
	log.Info("game over")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if err := d.store.Save(ctx, game); err != nil {
			log.WithError(err).Error("could not save game")
		}
	}()
}
