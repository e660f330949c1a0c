package ws

import (
	"encoding/json"
	"log"

	"github.com/Rapheal-Kwabena/movieroom-app/internal/domain"
	"github.com/gorilla/websocket"
)

// Client is the transport side of one session: a read pump feeding the
// coordinator and a write pump draining the buffered Message channel.
type Client struct {
	conn    *connWrapper
	Message chan *WSMessage
	Session *domain.Session
}

func NewClient(conn *websocket.Conn, session *domain.Session) *Client {
	return &Client{
		conn:    newConnWrapper(conn),
		Message: make(chan *WSMessage, 64), // buffered to avoid dead-locks on slow clients
		Session: session,
	}
}

type inboundFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ReadPump parses frames off the wire and hands them to the coordinator. A
// read error of any kind counts as a disconnect, which the coordinator treats
// exactly like an explicit leave.
func (c *Client) ReadPump(core *Core) {
	defer func() {
		core.Unregister() <- c
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error (session %s): %v", c.Session.ID, err)
			}
			break
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil || frame.Type == "" {
			log.Printf("ws malformed frame (session %s): %v", c.Session.ID, err)
			continue
		}

		core.Inbound() <- &InboundEvent{
			Client: c,
			Type:   frame.Type,
			Data:   frame.Data,
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.Message {
		if err := c.conn.WriteJSON(msg); err != nil {
			log.Printf("ws write error (session %s): %v", c.Session.ID, err)
			break
		}
	}
}
