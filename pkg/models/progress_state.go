package models

import "time"

// ProgressState holds the single learner's session-wide goal state.
// SessionStart is set once when the row is first created and never changes
// afterwards; WordsLearned only ever grows.
type ProgressState struct {
	ID           int64     `json:"id" db:"id"`
	SessionStart time.Time `json:"session_start" db:"session_start"`
	WordsLearned int       `json:"words_learned" db:"words_learned"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
