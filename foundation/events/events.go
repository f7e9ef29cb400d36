// Package events allows for the registering and receiving of block append
// events.
package events

import (
	"fmt"
	"sync"
)

// BlockEvent carries the details of a block accepted into a chain.
type BlockEvent struct {
	Chain string
	Index int
	Hash  string
}

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive block events.
type Events struct {
	m  map[string]chan BlockEvent
	mu sync.RWMutex
}

// New constructs an events value for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]chan BlockEvent),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive events.
func (evt *Events) Acquire(id string) chan BlockEvent {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if exists {
		return ch
	}

	// A receiver busy rendering must not stall an append, so sends never
	// block and this buffer absorbs short bursts.
	const messageBuffer = 100

	evt.m[id] = make(chan BlockEvent, messageBuffer)
	return evt.m[id]
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)
	return nil
}

// Send signals the event to every registered channel. Send will not block
// waiting for a receiver on any given channel.
func (evt *Events) Send(ev BlockEvent) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.m {
		select {
		case ch <- ev:
		default:
		}
	}
}
