package repositories

import "github.com/freshbites/planner/pkg/domain/entities"

// NoteRepository provides access to collaboration notes
type NoteRepository interface {
	AddNote(text string) (entities.Note, error)
	GetNotes() ([]entities.Note, error)
	ApproveNote(id string) (entities.Note, error)
}
