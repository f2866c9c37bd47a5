package room

import (
	"context"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"literature-server/pkg/deck"
	"literature-server/pkg/literature"
	"literature-server/pkg/playable"
	"literature-server/pkg/record"
)

type memoryStore struct {
	saved chan *record.Game
}

func (m *memoryStore) Save(_ context.Context, game *record.Game) error {
	m.saved <- game
	return nil
}

func newTestDealer(t *testing.T) (*Dealer, *memoryStore) {
	t.Helper()

	logger := logrus.New()
	logger.Out = io.Discard

	store := &memoryStore{saved: make(chan *record.Game, 10)}
	d := NewDealer(Options{
		Game:   literature.DefaultOptions(),
		Store:  store,
		Logger: logger,
		Rand:   rand.New(rand.NewSource(1)), // nolint:gosec
	})

	return d, store
}

// seatClients connects n clients named p0, p1, ... and drains their messages
func seatClients(t *testing.T, d *Dealer, n int) []*Client {
	t.Helper()

	clients := make([]*Client, n)
	for i := range clients {
		clients[i] = NewClient(nil)
		d.addClient(clients[i])
		d.handleMessage(clients[i], &playable.PayloadIn{Action: actionSetName, Subject: "p" + string(rune('0'+i))})
	}

	for _, c := range clients {
		drain(c)
	}

	return clients
}

func drain(c *Client) []*playable.Response {
	var out []*playable.Response
	for {
		select {
		case msg := <-c.send:
			out = append(out, msg.(*playable.Response))
		default:
			return out
		}
	}
}

func keys(responses []*playable.Response) []string {
	k := make([]string, len(responses))
	for i, r := range responses {
		k[i] = r.Key
	}

	return k
}

// startGame deals a game, then replaces the hands
func startGame(t *testing.T, d *Dealer, clients []*Client, hands ...string) {
	t.Helper()

	d.handleMessage(clients[0], &playable.PayloadIn{Action: actionStartGame})
	for _, c := range clients {
		drain(c)
	}

	for seat := range clients {
		p, err := d.game.Player(seat)
		require.NoError(t, err)

		p.Hand = deck.Hand{}
		if seat < len(hands) {
			p.Hand = deck.CardsFromString(hands[seat])
		}
	}
}

func TestDealer_addClient(t *testing.T) {
	a := assert.New(t)
	d, _ := newTestDealer(t)

	clients := make([]*Client, 6)
	for i := range clients {
		clients[i] = NewClient(nil)
		d.addClient(clients[i])
		a.Equal(i, clients[i].Seat())
	}

	first := drain(clients[0])
	a.Equal([]string{keyPlayerNumber, keyTeams, keyTeams, keyTeams, keyTeams, keyTeams, keyTeams}, keys(first))
	a.Equal(0, first[0].Data)

	last := drain(clients[5])
	a.Equal([]string{keyPlayerNumber, keyTeams}, keys(last))
	a.Equal(5, last[0].Data)

	teams, ok := last[1].Data.([2][]string)
	if a.True(ok) {
		a.Len(teams[0], 3)
		a.Len(teams[1], 3)
	}

	// the seventh client is turned away
	extra := NewClient(nil)
	d.addClient(extra)
	a.Equal(noSeat, extra.Seat())
	a.Len(d.clients, 6)

	rejected := drain(extra)
	if a.Len(rejected, 1) {
		a.Equal(keyPlayerNumber, rejected[0].Key)
		a.Equal(-1, rejected[0].Data)
	}

	select {
	case reason := <-extra.Close:
		a.Equal("the table is full", reason)
	default:
		t.Error("expected the client to be closed")
	}

	// nobody else heard about it
	a.Empty(drain(clients[0]))
}

func TestDealer_removeClient(t *testing.T) {
	a := assert.New(t)
	d, _ := newTestDealer(t)
	clients := seatClients(t, d, 6)

	d.removeClient(clients[1])
	a.Len(d.clients, 5)
	_, err := d.game.Player(1)
	a.Error(err)

	msgs := drain(clients[0])
	if a.Len(msgs, 1) {
		a.Equal(keyTeams, msgs[0].Key)
		a.Equal([2][]string{{"p0", "p2"}, {"p3", "p4", "p5"}}, msgs[0].Data)
	}

	a.Empty(drain(clients[1]))

	// unknown clients are ignored
	d.removeClient(NewClient(nil))
	d.removeClient(clients[1])
	a.Empty(drain(clients[0]))

	// the seat is reused
	c := NewClient(nil)
	d.addClient(c)
	a.Equal(1, c.Seat())
}

func TestDealer_setName(t *testing.T) {
	a := assert.New(t)
	d, _ := newTestDealer(t)
	clients := seatClients(t, d, 2)

	d.handleMessage(clients[1], &playable.PayloadIn{Action: actionSetName, Subject: "  Alice  "})
	msgs := drain(clients[0])
	if a.Len(msgs, 1) {
		a.Equal([2][]string{{"p0", "Alice"}, {}}, msgs[0].Data)
	}

	drain(clients[1])
	d.handleMessage(clients[1], &playable.PayloadIn{Action: actionSetName, Subject: " ", Context: "abc"})
	a.Empty(drain(clients[0]))

	msgs = drain(clients[1])
	if a.Len(msgs, 1) {
		a.Equal(keyError, msgs[0].Key)
		a.Equal("name cannot be empty", msgs[0].Value)
		a.Equal("abc", msgs[0].Context)
	}
}

func TestDealer_startGame(t *testing.T) {
	a := assert.New(t)
	d, _ := newTestDealer(t)
	clients := seatClients(t, d, 5)

	d.handleMessage(clients[2], &playable.PayloadIn{Action: actionStartGame, Context: "ctx"})
	a.Empty(drain(clients[0]))

	msgs := drain(clients[2])
	if a.Len(msgs, 1) {
		a.Equal(&playable.Response{Key: keyStartGameResponse, Data: startNotEnoughPlayers, Context: "ctx"}, msgs[0])
	}

	c := NewClient(nil)
	d.addClient(c)
	clients = append(clients, c)
	for _, c := range clients {
		drain(c)
	}

	d.handleMessage(clients[2], &playable.PayloadIn{Action: actionStartGame})

	msgs = drain(clients[2])
	a.Equal([]string{keyStartGameResponse, keyMessage, keyMessage}, keys(msgs))
	a.Equal(startOK, msgs[0].Data)

	others := drain(clients[0])
	a.Equal([]string{keyMessage, keyMessage}, keys(others))

	state := others[0].Data.(*literature.GameState)
	a.Equal("Game Started!", state.Message)
	state = others[1].Data.(*literature.GameState)
	a.Contains(state.Message, " is up")
	a.Equal(d.game.PlayerInTurn(), state.PlayerInTurn)

	a.Len(d.logMessages, 2)
	a.NotEmpty(d.gameUUID)
}

func TestDealer_startGame_alreadyRunning(t *testing.T) {
	d, _ := newTestDealer(t)
	d.game = literature.NewGame(d.logger, rand.New(rand.NewSource(2)), literature.Options{}) // nolint:gosec
	clients := seatClients(t, d, 6)

	d.handleMessage(clients[0], &playable.PayloadIn{Action: actionStartGame})
	drain(clients[0])

	d.handleMessage(clients[0], &playable.PayloadIn{Action: actionStartGame})
	msgs := drain(clients[0])
	if assert.Len(t, msgs, 1) {
		assert.Equal(t, startAlreadyRunning, msgs[0].Data)
	}
}

func TestDealer_getHand(t *testing.T) {
	a := assert.New(t)
	d, _ := newTestDealer(t)
	clients := seatClients(t, d, 6)
	startGame(t, d, clients, "2J,AH")

	d.handleMessage(clients[0], &playable.PayloadIn{Action: actionGetHand, Context: "hand"})
	msgs := drain(clients[0])
	if a.Len(msgs, 1) {
		a.Equal(keyGetHandResponse, msgs[0].Key)
		a.Equal("hand", msgs[0].Context)
		a.Equal(&literature.HandState{
			Names: []string{"Ace of Hearts", "Colored Joker"},
			Codes: []string{"AH", "2J"},
		}, msgs[0].Data)
	}

	a.Empty(drain(clients[1]))
}

func TestDealer_askForCard(t *testing.T) {
	a := assert.New(t)
	d, _ := newTestDealer(t)
	clients := seatClients(t, d, 6)
	startGame(t, d, clients, "AH", "", "", "2H")

	ask := func(c *Client, player, rank, suit string) {
		d.handleMessage(c, &playable.PayloadIn{
			Action:  actionAskForCard,
			Context: "ask",
			AdditionalData: playable.AdditionalData{
				"player": player,
				"rank":   rank,
				"suit":   suit,
			},
		})
	}

	failures := []struct {
		player, rank, suit string
		reason             string
	}{
		{"p3", "Eleven", "Hearts", "unknown rank: Eleven"},
		{"p3", "2", "Cups", "unknown suit: Cups"},
		{"p0", "2", "Hearts", "Cannot ask self for card!"},
		{"p1", "2", "Hearts", "Cannot ask teammate for a card!"},
		{"p3", "BW Joker", "Hearts", "Cannot give a suit when asking for a joker!"},
		{"p3", "Ace", "Hearts", "Cannot ask for a card that you own!"},
		{"p3", "King", "Hearts", "Cannot ask for a card if you don't have a card from that book!"},
		{"nobody", "2", "Hearts", "Failed to get player nobody"},
	}

	for _, f := range failures {
		ask(clients[0], f.player, f.rank, f.suit)
		msgs := drain(clients[0])
		if a.Len(msgs, 1, f.reason) {
			a.Equal(&playable.Response{Key: keyAskFailed, Value: f.reason, Context: "ask"}, msgs[0])
		}

		a.Empty(drain(clients[3]), f.reason)
	}

	ask(clients[0], "p3", "2", "Hearts")
	for _, c := range clients {
		msgs := drain(c)
		if a.Len(msgs, 1) {
			state := msgs[0].Data.(*literature.GameState)
			a.Equal("p0 asked p3 for the 2 of Hearts\nThe ask succeeded! p0 is still up.", state.Message)
		}
	}

	hand, err := d.game.Hand(0)
	a.NoError(err)
	a.Equal("AH,2H", hand.String())
}

func TestDealer_declare(t *testing.T) {
	a := assert.New(t)
	d, store := newTestDealer(t)
	clients := seatClients(t, d, 6)
	startGame(t, d, clients)

	d.handleMessage(clients[3], &playable.PayloadIn{Action: actionDeclare, Subject: "Middle Hearts"})
	msgs := drain(clients[3])
	if a.Len(msgs, 1) {
		a.Equal(keyAskFailed, msgs[0].Key)
		a.Equal("unknown book: Middle Hearts", msgs[0].Value)
	}

	books := []string{"Low Hearts", "Low Spades", "Low Diamonds", "Low Clubs"}
	for _, b := range books {
		d.handleMessage(clients[3], &playable.PayloadIn{Action: actionDeclare, Subject: b})
	}

	a.Len(drain(clients[0]), 4)
	for _, c := range clients[1:] {
		a.Len(drain(c), 4, "seat %d", c.Seat())
	}

	select {
	case <-store.saved:
		t.Fatal("game is not over yet")
	default:
	}

	d.handleMessage(clients[3], &playable.PayloadIn{Action: actionDeclare, Subject: "Low Hearts"})
	msgs = drain(clients[3])
	if a.Len(msgs, 1) {
		a.Equal(&playable.Response{Key: keyAskFailed, Value: "Book has already been declared!"}, msgs[0])
	}

	d.handleMessage(clients[4], &playable.PayloadIn{Action: actionDeclare, Subject: "extra"})
	msgs = drain(clients[0])
	if a.Len(msgs, 1) {
		state := msgs[0].Data.(*literature.GameState)
		a.True(state.GameOver)
		a.Equal(1, *state.Winner)
		a.Equal([]string{"Low Hearts", "Low Spades", "Low Diamonds", "Low Clubs", "Extra"}, state.Books[1])
	}

	select {
	case game := <-store.saved:
		a.Equal(d.gameUUID, game.UUID)
		a.Equal(1, game.Winner)
		a.Len(game.Books[1], 5)
		a.Equal([2][]string{{"p0", "p1", "p2"}, {"p3", "p4", "p5"}}, game.Teams)
		// two start lines, then five declarations of eight lines each
		a.Len(game.Log, 2+5*8)
	case <-time.After(time.Second):
		t.Fatal("game was not recorded")
	}

	// only recorded once
	d.handleMessage(clients[0], &playable.PayloadIn{Action: actionDeclare, Subject: "High Hearts"})
	select {
	case <-store.saved:
		t.Fatal("game was recorded twice")
	case <-time.After(time.Millisecond * 50):
	}
}

func TestDealer_gameNotStarted(t *testing.T) {
	d, _ := newTestDealer(t)
	clients := seatClients(t, d, 6)

	d.handleMessage(clients[0], &playable.PayloadIn{Action: actionDeclare, Subject: "Extra"})
	msgs := drain(clients[0])
	if assert.Len(t, msgs, 1) {
		assert.Equal(t, "The game has not started!", msgs[0].Value)
	}
}

func TestDealer_unknownAction(t *testing.T) {
	d, _ := newTestDealer(t)
	clients := seatClients(t, d, 1)

	d.handleMessage(clients[0], &playable.PayloadIn{Action: "deal-me-in"})
	msgs := drain(clients[0])
	if assert.Len(t, msgs, 1) {
		assert.Equal(t, keyError, msgs[0].Key)
		assert.Equal(t, "unknown action: deal-me-in", msgs[0].Value)
	}

	// messages from clients without a seat are dropped
	stranger := NewClient(nil)
	d.handleMessage(stranger, &playable.PayloadIn{Action: actionShuffleTeams})
	assert.Empty(t, drain(stranger))
	assert.Empty(t, drain(clients[0]))
}

func TestDealer_shuffleTeams(t *testing.T) {
	d, _ := newTestDealer(t)
	clients := seatClients(t, d, 6)

	d.handleMessage(clients[4], &playable.PayloadIn{Action: actionShuffleTeams})
	for _, c := range clients {
		msgs := drain(c)
		if assert.Len(t, msgs, 1) {
			teams := msgs[0].Data.([2][]string)
			assert.Len(t, teams[0], 3)
			assert.Len(t, teams[1], 3)
		}
	}
}

func TestDealer_runLoop(t *testing.T) {
	a := assert.New(t)
	d, _ := newTestDealer(t)
	d.StartShift()
	defer d.EndShift()

	c := NewClient(nil)
	d.AddClient(c)
	c.ReceivedMessage(&playable.PayloadIn{Action: actionSetName, Subject: "Spectated"})

	state, err := d.Spectate(context.Background())
	a.NoError(err)
	a.Equal(1, state.Clients)
	a.Equal([2][]string{{"Spectated"}, {}}, state.Teams)
	a.False(state.Running)
	a.Equal(-1, state.PlayerInTurn)

	d.RemoveClient(c)
	state, err = d.Spectate(context.Background())
	a.NoError(err)
	a.Equal(0, state.Clients)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Spectate(ctx)
	a.Equal(context.Canceled, err)
}

func TestDealer_EndShift(t *testing.T) {
	a := assert.New(t)
	d, _ := newTestDealer(t)
	d.StartShift()
	d.EndShift()
	d.EndShift()

	c := NewClient(nil)
	done := make(chan bool)
	go func() {
		// more than the run loop buffer holds
		for i := 0; i < 300; i++ {
			d.AddClient(c)
			d.ReceivedMessage(c, &playable.PayloadIn{Action: actionGetHand})
			d.RemoveClient(c)
		}

		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dealer blocked after its shift ended")
	}

	a.False(d.exec(func() {}))
	_, err := d.Spectate(context.Background())
	a.Equal(ErrShiftEnded, err)
}

func TestDealer_addLogMessages(t *testing.T) {
	d, _ := newTestDealer(t)
	d.messageBacklog = 3

	for i := 0; i < 5; i++ {
		d.addLogMessages([]*playable.LogMessage{playable.SimpleLogMessage(-1, "%d", i)})
	}

	assert.Len(t, d.logMessages, 3)
	assert.Equal(t, "2", d.logMessages[0].Message)
	assert.Equal(t, "4", d.logMessages[2].Message)
}

func Test_startCode(t *testing.T) {
	assert.Equal(t, 1, startCode(nil))
	assert.Equal(t, -1, startCode(literature.ErrNotEnoughPlayers))
	assert.Equal(t, -2, startCode(literature.ErrGameAlreadyRunning))
}

func TestClient_Send(t *testing.T) {
	c := NewClient(nil)
	for i := 0; i < cap(c.send); i++ {
		assert.True(t, c.Send(i))
	}

	assert.False(t, c.Send("overflow"))

	c.requestClose("one")
	c.requestClose("two")
	assert.Equal(t, "one", <-c.Close)
}
