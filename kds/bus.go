package kds

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/utils"
)

const subscriptionBuffer = 16

// Transport carries events between instances.
type Transport interface {
	Publish(ctx context.Context, e Event) error
	Subscribe(ctx context.Context, handler func(Event)) error
	Close() error
}

// Bus fans events out to in-process subscribers and, when a transport is set,
// to other instances. Delivery is best effort; a subscriber that falls behind
// loses events and catches up on its next poll.
type Bus struct {
	origin    string
	transport Transport

	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

func NewBus(origin string, transport Transport) *Bus {
	return &Bus{
		origin:    origin,
		transport: transport,
		subs:      make(map[*Subscription]struct{}),
	}
}

func (b *Bus) Origin() string { return b.origin }

// Publish delivers one event per topic locally and forwards it to the
// transport. Transport failures are logged, never returned.
func (b *Bus) Publish(ctx context.Context, topics ...string) {
	for _, topic := range dedupe(topics) {
		e := Event{Topic: topic, Origin: b.origin, At: time.Now().UTC()}
		b.PublishLocal(e)
		if b.transport == nil {
			continue
		}
		if err := b.transport.Publish(ctx, e); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"topic": topic,
				"error": err,
			}).Warn("Broadcast to other instances failed")
		}
	}
}

// PublishLocal delivers to in-process subscribers only.
func (b *Bus) PublishLocal(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs {
		if !sub.wants(e.Topic) {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			utils.InfoLogger.WithField("topic", e.Topic).Debug("Subscriber busy, event coalesced")
		}
	}
}

// Subscribe registers for the given topics, or every topic when none are
// named.
func (b *Bus) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		bus: b,
		ch:  make(chan Event, subscriptionBuffer),
	}
	if len(topics) > 0 {
		sub.topics = make(map[string]struct{}, len(topics))
		for _, t := range topics {
			sub.topics[t] = struct{}{}
		}
	}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Start relays events from other instances to local subscribers. Events that
// this bus published itself are skipped.
func (b *Bus) Start(ctx context.Context) error {
	if b.transport == nil {
		return nil
	}
	return b.transport.Subscribe(ctx, func(e Event) {
		if e.Origin == b.origin {
			return
		}
		b.PublishLocal(e)
	})
}

func (b *Bus) Close() error {
	b.mu.Lock()
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub.ch)
	}
	b.mu.Unlock()
	if b.transport != nil {
		return b.transport.Close()
	}
	return nil
}

type Subscription struct {
	bus    *Bus
	topics map[string]struct{}
	ch     chan Event
	once   sync.Once
}

func (s *Subscription) C() <-chan Event { return s.ch }

func (s *Subscription) wants(topic string) bool {
	if s.topics == nil {
		return true
	}
	_, ok := s.topics[topic]
	return ok
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		if _, ok := s.bus.subs[s]; ok {
			delete(s.bus.subs, s)
			close(s.ch)
		}
	})
}

func dedupe(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := topics[:0:0]
	for _, t := range topics {
		if _, ok := seen[t]; ok || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
