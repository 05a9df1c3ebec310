package notify

import (
	"encoding/json"
	"log"
)

// LogSink writes events to the process log. It is the default sink when no
// Redis address is configured, and the capture point in tests.
type LogSink struct{}

func (LogSink) Emit(eventName string, payload any) {
	ev := newEvent(eventName, payload)
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[notify] %s: marshal failed: %v", eventName, err)
		return
	}
	log.Printf("[notify] %s", data)
}
