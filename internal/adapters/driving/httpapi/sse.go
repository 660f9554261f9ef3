package httpapi

import (
	"fmt"
	"net/http"
	"strings"
)

// eventWriter frames server-sent events and flushes each one.
// Headers are written with the first event.
type eventWriter struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	started bool
}

func newEventWriter(w http.ResponseWriter) *eventWriter {
	return &eventWriter{w: w, rc: http.NewResponseController(w)}
}

func (e *eventWriter) start() {
	if e.started {
		return
	}
	h := e.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	e.w.WriteHeader(http.StatusOK)
	e.started = true
}

// Open commits the event-stream headers so a stream with no fragments is
// still a valid, empty event stream.
func (e *eventWriter) Open() error {
	if e.started {
		return nil
	}
	e.start()
	return e.rc.Flush()
}

// Data sends one answer fragment. A fragment spanning several lines is sent
// as one event with a data field per line.
func (e *eventWriter) Data(fragment string) error {
	return e.send("", fragment)
}

// Error sends an error event.
func (e *eventWriter) Error(err error) error {
	return e.send("error", err.Error())
}

func (e *eventWriter) send(event, payload string) error {
	e.start()

	var b strings.Builder
	if event != "" {
		fmt.Fprintf(&b, "event: %s\n", event)
	}
	for _, line := range strings.Split(payload, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")

	if _, err := e.w.Write([]byte(b.String())); err != nil {
		return err
	}
	return e.rc.Flush()
}
