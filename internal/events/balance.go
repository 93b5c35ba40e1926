package events

import (
	"sync"
	"time"
)

// Balance event sources.
const (
	SourceWallet = "wallet"
	SourceHedera = "hedera"
	SourceAI     = "ai"
)

// BalanceEvent is published whenever a session store accepts a fresh balance
// snapshot. Amounts are strings to avoid float precision issues when consumed
// by the dashboard layer.
type BalanceEvent struct {
	Timestamp time.Time `json:"ts"`
	Source    string    `json:"source"`
	Amount    string    `json:"amount,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// BalanceBroadcaster fans out balance events to all subscribers via buffered
// channels. It keeps the API intentionally small so call sites can stay
// straightforward.
type BalanceBroadcaster struct {
	mu     sync.RWMutex
	subs   map[chan BalanceEvent]struct{}
	buffer int
}

// NewBalanceBroadcaster creates a broadcaster with the given per-subscriber buffer.
func NewBalanceBroadcaster(buffer int) *BalanceBroadcaster {
	if buffer < 1 {
		buffer = 64
	}
	return &BalanceBroadcaster{
		subs:   make(map[chan BalanceEvent]struct{}),
		buffer: buffer,
	}
}

// Publish sends the event to all subscribers, dropping if a reader is slow.
func (b *BalanceBroadcaster) Publish(e BalanceEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			// drop slow consumer
		}
	}
}

// Subscribe returns a channel that receives events until Unsubscribe is called.
func (b *BalanceBroadcaster) Subscribe() chan BalanceEvent {
	ch := make(chan BalanceEvent, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the channel and closes it.
func (b *BalanceBroadcaster) Unsubscribe(ch chan BalanceEvent) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}
