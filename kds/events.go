package kds

import "time"

// Topics carried by the bus. Events carry no payload; subscribers re-read the
// collection behind the topic.
const (
	TopicLedgerChanged    = "ledger-changed"
	TopicInventoryChanged = "inventory-changed"
	TopicMenuChanged      = "menu-changed"
	TopicQueueChanged     = "queue-changed"
	TopicLayoutChanged    = "layout-changed"
)

// Default backstop polls.
const (
	LedgerPollInterval = 5 * time.Second
	QueuePollInterval  = 2 * time.Second
)

var collectionTopics = map[string]string{
	"orders":            TopicLedgerChanged,
	"offline-queue":     TopicQueueChanged,
	"inventory":         TopicInventoryChanged,
	"menu-overrides":    TopicMenuChanged,
	"restaurant-layout": TopicLayoutChanged,
}

// TopicForCollection maps a storage location to the topic its readers follow.
func TopicForCollection(collection string) (string, bool) {
	topic, ok := collectionTopics[collection]
	return topic, ok
}

type Event struct {
	Topic  string    `json:"topic"`
	Origin string    `json:"origin"`
	At     time.Time `json:"at"`
}

// Message is the frame written to websocket clients.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
