package notes

import (
	"github.com/freshbites/planner/pkg/domain/entities"
	"github.com/freshbites/planner/pkg/domain/repositories"
	"github.com/freshbites/planner/pkg/infrastructure/logging"
)

// Board is the collaboration note surface: free-text notes that planners
// can post and approve. Approval is one-way.
type Board struct {
	repo repositories.NoteRepository
	log  *logging.Logger
}

// NewBoard creates a board over the given note repository
func NewBoard(repo repositories.NoteRepository, log *logging.Logger) *Board {
	if log == nil {
		log = logging.NewNop()
	}
	return &Board{repo: repo, log: log}
}

// Add posts a new note
func (b *Board) Add(text string) (entities.Note, error) {
	note, err := b.repo.AddNote(text)
	if err != nil {
		return entities.Note{}, err
	}
	b.log.Info("note added", "id", note.ID)
	return note, nil
}

// List returns all notes in creation order
func (b *Board) List() ([]entities.Note, error) {
	return b.repo.GetNotes()
}

// Approve marks a note approved; unknown ids return ErrNotFound
func (b *Board) Approve(id string) (entities.Note, error) {
	note, err := b.repo.ApproveNote(id)
	if err != nil {
		return entities.Note{}, err
	}
	b.log.Info("note approved", "id", note.ID)
	return note, nil
}
