package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one websocket connection for one authenticated user. The
// identity is fixed at upgrade time; a join for any other identity is
// ignored.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan Event
	userID uint
	joined bool
}

type joinPayload struct {
	UserID uint `json:"userId"`
}

type sendMessagePayload struct {
	SenderID   uint   `json:"senderId"`
	ReceiverID uint   `json:"receiverId"`
	Content    string `json:"content"`
}

// ServeWS upgrades the request and starts the read/write pumps for the
// authenticated user.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan Event, 256),
		userID: userID,
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		if c.joined {
			c.hub.unregister <- c
		}
		_ = c.conn.Close()
	}()

	for {
		var ev Event
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		if err := json.Unmarshal(raw, &ev); err != nil {
			continue
		}

		data, _ := json.Marshal(ev.Data)

		switch ev.Event {
		case EventJoin:
			var p joinPayload
			if err := json.Unmarshal(data, &p); err != nil {
				continue
			}
			// A session may only subscribe to its own channel.
			if p.UserID != c.userID || c.joined {
				continue
			}
			c.joined = true
			c.hub.register <- c

		case EventSendMessage:
			var p sendMessagePayload
			if err := json.Unmarshal(data, &p); err != nil {
				continue
			}
			if p.ReceiverID == 0 || p.Content == "" {
				continue
			}
			if c.hub.OnMessage == nil {
				continue
			}
			// Sender is always the authenticated identity, whatever
			// the payload claims.
			if err := c.hub.OnMessage(c.userID, p.ReceiverID, p.Content); err != nil {
				log.Printf("ws: send_message failed: %v", err)
			}

		default:
			continue
		}
	}
}

func (c *Client) writePump() {
	defer func() { _ = c.conn.Close() }()

	for ev := range c.send {
		if err := c.conn.WriteJSON(ev); err != nil {
			break
		}
	}
}
