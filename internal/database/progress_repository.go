package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/vocabbot/pkg/models"
)

// progressRowID pins the single learner's state to one row.
const progressRowID = 1

// ProgressRepository persists the learner's session progress state.
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// LoadOrCreate returns the stored progress state, creating it with now as
// the immutable session start when none exists yet.
func (r *ProgressRepository) LoadOrCreate(now time.Time) (models.ProgressState, error) {
	var state models.ProgressState
	err := DB.Get(&state, DB.Rebind("SELECT * FROM progress_state WHERE id = ?"), progressRowID)
	if err == nil {
		return state, nil
	}
	if err != sql.ErrNoRows {
		return state, fmt.Errorf("failed to load progress state: %v", err)
	}

	state = models.ProgressState{
		ID:           progressRowID,
		SessionStart: now,
		UpdatedAt:    now,
	}
	query := "INSERT INTO progress_state (id, session_start, words_learned, updated_at) VALUES (?, ?, ?, ?)"
	if _, err := DB.Exec(DB.Rebind(query), state.ID, state.SessionStart, state.WordsLearned, state.UpdatedAt); err != nil {
		return state, fmt.Errorf("failed to create progress state: %v", err)
	}
	return state, nil
}

// Save persists the words-learned counter. The session start is intentionally
// not part of the statement: it is immutable once created.
func (r *ProgressRepository) Save(state models.ProgressState) error {
	query := "UPDATE progress_state SET words_learned = ?, updated_at = ? WHERE id = ?"
	if _, err := DB.Exec(DB.Rebind(query), state.WordsLearned, time.Now(), progressRowID); err != nil {
		return fmt.Errorf("failed to save progress state: %v", err)
	}
	return nil
}
