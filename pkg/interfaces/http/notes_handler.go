package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshbites/planner/pkg/application/services/notes"
	"github.com/freshbites/planner/pkg/domain/entities"
	"github.com/freshbites/planner/pkg/infrastructure/logging"
)

// NotesHandler serves the collaboration note board
type NotesHandler struct {
	board *notes.Board
	log   *logging.Logger
}

// NewNotesHandler creates a notes handler over the board
func NewNotesHandler(board *notes.Board, log *logging.Logger) *NotesHandler {
	if log == nil {
		log = logging.NewNop()
	}
	return &NotesHandler{board: board, log: log}
}

// List returns all notes in creation order
func (h *NotesHandler) List(c *gin.Context) {
	listed, err := h.board.List()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if listed == nil {
		listed = []entities.Note{}
	}
	c.JSON(http.StatusOK, gin.H{"notes": listed})
}

type addNoteRequest struct {
	Text string `json:"text"`
}

// Add posts a new note
func (h *NotesHandler) Add(c *gin.Context) {
	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, entities.NewValidationError("body", "malformed JSON: %v", err))
		return
	}
	note, err := h.board.Add(req.Text)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// Approve marks a note approved
func (h *NotesHandler) Approve(c *gin.Context) {
	note, err := h.board.Approve(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, note)
}
