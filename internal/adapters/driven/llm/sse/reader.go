// Package sse reads server-sent event streams returned by model APIs.
package sse

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single event line.
const maxLineSize = 1 << 20

// Event is one dispatched server-sent event.
type Event struct {
	// Name is the value of the last "event:" field, empty if none was sent.
	Name string

	// Data holds the "data:" fields joined with newlines.
	Data string
}

// Reader splits a stream into events. It is not safe for concurrent use.
type Reader struct {
	sc *bufio.Scanner
}

// NewReader creates a reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// Next returns the next event. It returns io.EOF once the stream ends;
// a trailing event without a terminating blank line is still delivered.
func (r *Reader) Next() (Event, error) {
	var (
		ev   Event
		data []string
		seen bool
	)
	for r.sc.Scan() {
		line := strings.TrimSuffix(r.sc.Text(), "\r")
		if line == "" {
			if seen {
				ev.Data = strings.Join(data, "\n")
				return ev, nil
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			ev.Name = value
			seen = true
		case "data":
			data = append(data, value)
			seen = true
		}
	}
	if err := r.sc.Err(); err != nil {
		return Event{}, err
	}
	if seen {
		ev.Data = strings.Join(data, "\n")
		return ev, nil
	}
	return Event{}, io.EOF
}
