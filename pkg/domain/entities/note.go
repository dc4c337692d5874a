package entities

import "time"

// Note is a free-text collaboration entry on the planning board.
// Approved only ever flips from false to true.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Approved  bool      `json:"approved"`
	Timestamp time.Time `json:"timestamp"`
}
