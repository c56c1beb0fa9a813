package ws

import (
	"log"

	"github.com/haulmatch/loadboard/models"
)

// Event is the envelope for every frame on the socket, in both
// directions.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

const (
	EventJoin           = "join"
	EventSendMessage    = "send_message"
	EventReceiveMessage = "receive_message"
)

type delivery struct {
	targets []uint
	event   Event
}

// Hub owns the registry of live sessions, keyed by user identity. All
// membership changes and deliveries go through its run loop, so no
// locking is needed.
type Hub struct {
	clients    map[uint]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan delivery

	// OnMessage persists a message arriving over the socket. It is
	// expected to publish the stored record back through the hub once
	// the insert commits.
	OnMessage func(senderID, receiverID uint, content string) error
}

func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[uint]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan delivery, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			if _, ok := h.clients[c.userID]; !ok {
				h.clients[c.userID] = make(map[*Client]bool)
			}
			h.clients[c.userID][c] = true
			log.Printf("ws: client joined channel %d", c.userID)

		case c := <-h.unregister:
			h.drop(c)

		case d := <-h.broadcast:
			for _, target := range d.targets {
				for c := range h.clients[target] {
					select {
					case c.send <- d.event:
					default:
						// Client can't keep up; treat it as dead. The
						// poll fallback catches it up after reconnect.
						h.drop(c)
					}
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	conns, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, exists := conns[c]; exists {
		delete(conns, c)
		close(c.send)
	}
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}
}

// PublishMessage fans a stored message out to every live session of
// the sender and the receiver. Best effort: sessions not connected
// receive nothing.
func (h *Hub) PublishMessage(msg *models.Message) {
	targets := []uint{msg.SenderID}
	if msg.ReceiverID != msg.SenderID {
		targets = append(targets, msg.ReceiverID)
	}
	h.broadcast <- delivery{
		targets: targets,
		event:   Event{Event: EventReceiveMessage, Data: msg},
	}
}
