package main

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mauriciobarroso/button"
)

// Event is one classified gesture as streamed to websocket and MQTT
// subscribers.
type Event struct {
	Button  int    `json:"button"`
	Name    string `json:"name"`
	Gesture string `json:"gesture"`
	Time    int64  `json:"time"`
}

func NewEvent(id int, name string, g button.Gesture) Event {
	return Event{
		Button:  id,
		Name:    name,
		Gesture: g.String(),
		Time:    time.Now().UnixMilli(),
	}
}

// Broadcaster fans events out to the connected websocket clients. A
// client that fails a write is dropped.
type Broadcaster struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{conns: map[*websocket.Conn]struct{}{}}
}

func (b *Broadcaster) Add(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conns[conn] = struct{}{}
}

func (b *Broadcaster) Remove(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conns, conn)
}

func (b *Broadcaster) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.conns {
		if err := conn.WriteJSON(e); err != nil {
			l.Warn().Println("drop websocket client:", err)
			_ = conn.Close()
			delete(b.conns, conn)
		}
	}
}
