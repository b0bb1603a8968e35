package models

import (
	"strings"
	"time"
)

// Vocabulary represents a target-language headword being learned
type Vocabulary struct {
	ID              int64     `json:"id" db:"id"`
	Word            string    `json:"word" db:"word"`
	Category        Category  `json:"category" db:"category"`
	TotalAttempts   int       `json:"total_attempts" db:"total_attempts"`
	CorrectAttempts int       `json:"correct_attempts" db:"correct_attempts"`
	MemoryScore     float64   `json:"memory_score" db:"memory_score"`       // correct/total, 0 when never attempted
	Last10          string    `json:"last10_attempts" db:"last10_attempts"` // run of '1'/'0' digits, oldest first
	LastStudiedAt   time.Time `json:"last_studied_at" db:"last_studied_at"` // zero when never studied
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	Examples []Example `json:"examples,omitempty" db:"-"`
}

// Last10Attempts decodes the rolling attempt history, oldest first.
// Malformed history decodes as empty rather than failing.
func (v *Vocabulary) Last10Attempts() []bool {
	s := strings.TrimSpace(v.Last10)
	if s == "" {
		return nil
	}
	bits := make([]bool, 0, len(s))
	for _, r := range s {
		switch r {
		case '1':
			bits = append(bits, true)
		case '0':
			bits = append(bits, false)
		default:
			return nil
		}
	}
	return bits
}

// EncodeAttempts serializes an attempt history for storage.
func EncodeAttempts(bits []bool) string {
	var b strings.Builder
	for _, bit := range bits {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// UsableExamples returns the examples that carry at least one non-blank
// sentence. Examples without sentences cannot be practiced.
func (v *Vocabulary) UsableExamples() []Example {
	out := make([]Example, 0, len(v.Examples))
	for _, e := range v.Examples {
		if e.Usable() {
			out = append(out, e)
		}
	}
	return out
}

// HasExamples reports whether the item can be practiced at all.
func (v *Vocabulary) HasExamples() bool {
	for _, e := range v.Examples {
		if e.Usable() {
			return true
		}
	}
	return false
}
