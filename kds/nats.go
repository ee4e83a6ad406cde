package kds

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/yeremiapane/pos-ledger/utils"
)

// NATSTransport broadcasts events on a single subject.
type NATSTransport struct {
	conn    *nats.Conn
	subject string
	sub     *nats.Subscription
}

func NewNATSTransport(url, subject string) (*NATSTransport, error) {
	conn, err := nats.Connect(url, nats.Name("pos-ledger"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSTransport{conn: conn, subject: subject}, nil
}

func (t *NATSTransport) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return t.conn.Publish(t.subject, data)
}

func (t *NATSTransport) Subscribe(ctx context.Context, handler func(Event)) error {
	sub, err := t.conn.Subscribe(t.subject, func(msg *nats.Msg) {
		var e Event
		if err := json.Unmarshal(msg.Data, &e); err != nil {
			utils.ErrorLogger.Printf("Ignoring malformed NATS event: %v", err)
			return
		}
		handler(e)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", t.subject, err)
	}
	t.sub = sub
	return nil
}

func (t *NATSTransport) Close() error {
	if t.sub != nil {
		_ = t.sub.Unsubscribe()
	}
	t.conn.Close()
	return nil
}
