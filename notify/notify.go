// Package notify carries "task changed" events to the external bus. The
// engine takes a Sink as an explicit constructor dependency; it owes the bus
// no retries and no acknowledgement handling.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Event is the envelope published for every notification.
type Event struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

// Sink is the single capability the engine holds against the bus.
// Emit is fire-and-forget; implementations must not block the caller on
// delivery.
type Sink interface {
	Emit(eventName string, payload any)
}

func newEvent(name string, payload any) Event {
	return Event{
		ID:      uuid.NewString(),
		Name:    name,
		At:      time.Now().UTC(),
		Payload: payload,
	}
}
