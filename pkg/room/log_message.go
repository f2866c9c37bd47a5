package room

import (
	"literature-server/pkg/playable"
)

const defaultMessageBacklog = 25

// addLogMessages adds log messages to the backlog, dropping the oldest
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > d.messageBacklog {
		m = m[count-d.messageBacklog:]
	}

	d.logMessages = m
}
