package server

import (
	"sync"

	"github.com/goccy/go-json"
)

// Event is the payload published to a player's subscribers.
type Event struct {
	Type          string `json:"type"`
	IsCorrect     bool   `json:"isCorrect,omitempty"`
	CurrentScore  int    `json:"currentScore"`
	CurrentStreak int    `json:"currentStreak"`
	BestStreak    int    `json:"bestStreak"`
	Metric        string `json:"metric,omitempty"`
}

const (
	eventAnswered = "answered"
	eventReset    = "reset"
	eventMetric   = "metric"
)

// message is one encoded event as delivered to a subscriber.
type message struct {
	Type string
	Data []byte
}

// Broker is an in-process pub/sub for SSE events, keyed by player.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan message]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan message]struct{}),
	}
}

// Subscribe returns a channel that receives the player's events.
func (b *Broker) Subscribe(player string) chan message {
	ch := make(chan message, 16)
	b.mu.Lock()
	if b.subs[player] == nil {
		b.subs[player] = make(map[chan message]struct{})
	}
	b.subs[player][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(player string, ch chan message) {
	b.mu.Lock()
	delete(b.subs[player], ch)
	if len(b.subs[player]) == 0 {
		delete(b.subs, player)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the player. Slow subscribers
// miss events rather than block the publisher.
func (b *Broker) Publish(player string, event Event) {
	data, _ := json.Marshal(event)
	msg := message{Type: event.Type, Data: data}
	b.mu.RLock()
	for ch := range b.subs[player] {
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.RUnlock()
}
