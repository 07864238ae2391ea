// Package notify is the change-notification layer that replaces the old
// client-side live-subscription model. Writers publish a topic after a
// successful mutation; subscribers get a signal and re-read the whole
// collection themselves. Signals carry no payload and coalesce, so a slow
// subscriber never blocks a writer and never sees a stale diff, only a
// fresh snapshot.
package notify

import (
	"strconv"
	"sync"
)

// Collection topics. Horse log streams use LogTopic(horseID).
const (
	TopicHorses    = "horses"
	TopicPlayers   = "players"
	TopicPractices = "practices"
)

// Hub fans publish signals out to per-topic subscribers.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: map[string]map[int]chan struct{}{}}
}

// Subscribe registers interest in a topic. The returned channel receives
// a signal whenever the topic is published; pending signals coalesce into
// one. cancel unregisters the subscription and must be called exactly
// once.
func (h *Hub) Subscribe(topic string) (ch <-chan struct{}, cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++

	c := make(chan struct{}, 1)
	if h.subs[topic] == nil {
		h.subs[topic] = map[int]chan struct{}{}
	}
	h.subs[topic][id] = c

	return c, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subs[topic]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.subs, topic)
			}
		}
	}
}

// Publish signals every subscriber of the topic without blocking. A
// subscriber that already holds an undelivered signal is skipped; it will
// re-read the collection anyway.
func (h *Hub) Publish(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.subs[topic] {
		select {
		case c <- struct{}{}:
		default:
		}
	}
}

// LogTopic is the per-horse activity log topic.
func LogTopic(horseID int) string {
	return "horses/" + strconv.Itoa(horseID) + "/logs"
}
