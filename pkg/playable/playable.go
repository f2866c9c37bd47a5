package playable

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"literature-server/pkg/deck"
)

// LogMessage is one line of game narration
// Seats lists who the line is about, Cards the cards it mentions
type LogMessage struct {
	UUID    string      `json:"uuid"`
	Seats   []int       `json:"seats"`
	Cards   []deck.Card `json:"cards"`
	Message string      `json:"message"`
	Time    time.Time   `json:"time"`
}

// Response is a message sent to one or all clients
// Key is the event name the client listens for
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// PayloadIn is the format we expect from the JS client
// Action is the event name, Subject its main argument (a name or a book)
type PayloadIn struct {
	Action         string         `json:"action"`
	Subject        string         `json:"subject"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// SimpleLogMessage returns a new LogMessage
// A negative seat means the line is not about any one player
func SimpleLogMessage(seat int, format string, a ...interface{}) *LogMessage {
	var seats []int
	if seat >= 0 {
		seats = []int{seat}
	}

	return &LogMessage{
		UUID:    uuid.New().String(),
		Seats:   seats,
		Message: fmt.Sprintf(format, a...),
		Time:    time.Now(),
	}
}

// Narration joins the messages into the text broadcast to clients
func Narration(messages []*LogMessage) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = msg.Message
	}

	return strings.Join(lines, "\n")
}
