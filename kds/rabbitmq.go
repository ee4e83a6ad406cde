package kds

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/yeremiapane/pos-ledger/utils"
)

// RabbitTransport broadcasts events through a fanout exchange. Every
// subscriber gets its own exclusive, auto-deleted queue.
type RabbitTransport struct {
	conn     *amqp.Connection
	pubCh    *amqp.Channel
	consCh   *amqp.Channel
	exchange string
	mu       sync.Mutex
}

func NewRabbitTransport(url, exchange string) (*RabbitTransport, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare %s: %w", exchange, err)
	}
	return &RabbitTransport{conn: conn, pubCh: ch, exchange: exchange}, nil
}

func (t *RabbitTransport) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.pubCh.PublishWithContext(
		ctx,
		t.exchange,
		"",    // fanout ignores the routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Transient,
			ContentType:  "application/json",
			Timestamp:    e.At,
			Body:         body,
		},
	)
}

func (t *RabbitTransport) Subscribe(ctx context.Context, handler func(Event)) error {
	ch, err := t.conn.Channel()
	if err != nil {
		return err
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "", t.exchange, false, nil); err != nil {
		_ = ch.Close()
		return fmt.Errorf("bind %s: %w", t.exchange, err)
	}
	msgs, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("consume %s: %w", q.Name, err)
	}
	t.consCh = ch

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					return
				}
				var e Event
				if err := json.Unmarshal(d.Body, &e); err != nil {
					utils.ErrorLogger.Printf("Ignoring malformed RabbitMQ event: %v", err)
					continue
				}
				handler(e)
			}
		}
	}()
	return nil
}

func (t *RabbitTransport) Close() error {
	if t.consCh != nil {
		_ = t.consCh.Close()
	}
	if t.pubCh != nil {
		_ = t.pubCh.Close()
	}
	return t.conn.Close()
}
