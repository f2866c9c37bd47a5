package room

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"literature-server/pkg/playable"
)

// noSeat is the seat of a client that was turned away
const noSeat = -1

// Client is a client connected to the server via websockets
// A client holds one seat for the lifetime of the connection.
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// ID traces the connection in logs
	ID string

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer
	seat   int
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		Conn:  conn,
		ID:    uuid.New().String(),
		send:  make(chan interface{}, 256),
		Close: make(chan string, 1),
		seat:  noSeat,
	}
}

// Send send a message to the web client
// Returns false if the client's buffer is full and the message was dropped
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Seat returns the seat the client holds, or -1 if it was turned away
// NOTE: only valid once the dealer has processed the connect
func (c *Client) Seat() int {
	return c.seat
}

// String returns a traceable identifier for the connection and seat
func (c *Client) String() string {
	return fmt.Sprintf("%s:%d", c.ID, c.seat)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}

// requestClose asks the write loop to close the connection
func (c *Client) requestClose(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}
