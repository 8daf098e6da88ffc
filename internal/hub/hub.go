package hub

import (
	"sync"
)

// DefaultBuffer is the per-subscriber channel capacity used when none is given.
const DefaultBuffer = 16

// Client receives the events broadcast on one topic.
// It is closed when the client is unsubscribed.
type Client[T any] chan T

// Hub fans events out to the clients subscribed to a topic.
type Hub[T any] struct {
	topics map[string]map[Client[T]]bool
	mu     sync.RWMutex
}

// New creates an empty Hub.
func New[T any]() *Hub[T] {
	return &Hub[T]{
		topics: make(map[string]map[Client[T]]bool),
	}
}

// Subscribe registers a new client on topic. A buffer below 1 uses DefaultBuffer.
func (h *Hub[T]) Subscribe(topic string, buffer int) Client[T] {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	client := make(Client[T], buffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.topics[topic]; !ok {
		h.topics[topic] = make(map[Client[T]]bool)
	}
	h.topics[topic][client] = true
	return client
}

// Unsubscribe removes a client from a topic and closes its channel.
func (h *Hub[T]) Unsubscribe(topic string, client Client[T]) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.topics[topic]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the reader to stop.
			if len(clients) == 0 {
				delete(h.topics, topic)
			}
		}
	}
}

// Broadcast sends event to every client on topic and returns how many
// clients received it. A client whose buffer is full misses the event.
func (h *Hub[T]) Broadcast(topic string, event T) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.topics[topic] {
		// Non-blocking so a slow reader cannot stall the publisher.
		select {
		case client <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers returns the number of clients on topic.
func (h *Hub[T]) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Close unsubscribes every client on every topic.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for topic, clients := range h.topics {
		for client := range clients {
			close(client)
		}
		delete(h.topics, topic)
	}
}
