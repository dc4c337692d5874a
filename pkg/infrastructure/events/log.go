package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Log is an in-memory append-only record of dataset mutations with
// per-stream versions and change tokens
type Log struct {
	mu      sync.RWMutex
	streams map[Dataset][]Event
	tokens  map[Dataset]string
	all     []Event
}

// NewLog creates an empty mutation log
func NewLog() *Log {
	return &Log{
		streams: make(map[Dataset][]Event),
		tokens:  make(map[Dataset]string),
	}
}

// Append records a mutation against a dataset and returns the event
// carrying its fresh change token
func (l *Log) Append(ds Dataset, kind Kind, rows int) Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev := Event{
		Dataset:  ds,
		Kind:     kind,
		Token:    uuid.NewString(),
		Rows:     rows,
		Version:  len(l.streams[ds]) + 1,
		Occurred: time.Now().UTC(),
	}
	l.streams[ds] = append(l.streams[ds], ev)
	l.tokens[ds] = ev.Token
	l.all = append(l.all, ev)
	return ev
}

// Token returns the current change token for a dataset, or empty when the
// dataset has never been mutated
func (l *Log) Token(ds Dataset) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tokens[ds]
}

// Events returns a dataset's events from the given version onward (1-based)
func (l *Log) Events(ds Dataset, fromVersion int) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stream := l.streams[ds]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return nil
	}
	out := make([]Event, len(stream)-fromVersion+1)
	copy(out, stream[fromVersion-1:])
	return out
}

// All returns every recorded event in append order
func (l *Log) All() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Event, len(l.all))
	copy(out, l.all)
	return out
}
