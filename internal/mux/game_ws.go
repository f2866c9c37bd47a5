package mux

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"literature-server/pkg/playable"
	"literature-server/pkg/room"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// getWS seats the connection at the table for as long as it stays open
func (m *Mux) getWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := room.NewClient(conn)
		logrus.WithFields(logrus.Fields{
			"client":     client.ID,
			"remoteAddr": remoteAddr(r),
		}).Debug("client connected")

		m.dealer.AddClient(client)

		waitForCloseFrame := make(chan bool)
		defer func() {
			m.dealer.RemoveClient(client)
			_ = conn.Close()
			close(waitForCloseFrame)
			logrus.WithField("client", client.ID).Debug("client disconnected")
		}()

		go m.webSocketWriteLoop(client, waitForCloseFrame)
		m.webSocketReadLoop(client)
	}
}

func (m *Mux) webSocketWriteLoop(client *room.Client, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.Close:
			// anything queued before the close goes out first
			for flushed := false; !flushed; {
				select {
				case msg := <-client.SendChan():
					if !writeMessage(client, msg) {
						return
					}
				default:
					flushed = true
				}
			}

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// wait for the close frame
			select {
			case <-waitForCloseFrame:
			case <-time.After(time.Second):
			}
			return
		case msg, ok := <-client.SendChan():
			if !ok {
				return
			}

			if !writeMessage(client, msg) {
				return
			}
		}
	}
}

func writeMessage(client *room.Client, msg interface{}) bool {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		msgBytes, _ := json.Marshal(msg)
		logrus.WithField("message", string(msgBytes)).WithField("client", client.ID).Trace("sending message to client")
	}

	_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := client.Conn.WriteJSON(msg); err != nil {
		logrus.WithError(err).WithField("client", client.ID).Error("could not write message")
		return false
	}

	return true
}

func (m *Mux) webSocketReadLoop(client *room.Client) {
	for {
		var msg playable.PayloadIn
		if err := client.Conn.ReadJSON(&msg); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				logrus.WithError(err).WithField("client", client.ID).Warn("could not decode message")
				client.Send(&playable.Response{Key: "error", Value: "could not decode message"})
				continue
			}

			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.ID).Error("could not read message")
			}

			client.CloseError = err
			return
		}

		client.ReceivedMessage(&msg)
	}
}
