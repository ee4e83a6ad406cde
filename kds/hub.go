package kds

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/utils"
)

const writeWait = 5 * time.Second

// Hub holds connected display clients (kitchen, register, customer screen)
// and pushes bus events to them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
	utils.InfoLogger.WithField("role", role).Info("Display client connected")
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	conn.Close()
}

func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast writes msg to every client, dropping clients whose write fails.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"role":  role,
				"error": err,
			}).Warn("Dropping display client")
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// Run forwards every bus event to the clients and adds the backstop polls, so
// a client that missed a broadcast still refreshes.
func (h *Hub) Run(ctx context.Context, bus *Bus, ledgerPoll, queuePoll time.Duration) {
	sub := bus.Subscribe()
	defer sub.Close()

	ledgerTicker := time.NewTicker(ledgerPoll)
	defer ledgerTicker.Stop()
	queueTicker := time.NewTicker(queuePoll)
	defer queueTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-sub.C():
			if !ok {
				return
			}
			h.Broadcast(Message{Event: e.Topic, Data: e})
		case t := <-ledgerTicker.C:
			h.Broadcast(Message{Event: TopicLedgerChanged, Data: Event{Topic: TopicLedgerChanged, Origin: "poll", At: t.UTC()}})
		case t := <-queueTicker.C:
			h.Broadcast(Message{Event: TopicQueueChanged, Data: Event{Topic: TopicQueueChanged, Origin: "poll", At: t.UTC()}})
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}
