package models

import (
	"strings"
	"time"
)

// sentenceSeparator joins the acceptable sentences of one example into a
// single stored column. Sentences never contain newlines.
const sentenceSeparator = "\n"

// Example groups the acceptable target-language sentences for one prompt.
// Any one sentence matching the learner's answer is sufficient.
type Example struct {
	ID           int64     `json:"id" db:"id"`
	VocabularyID int64     `json:"vocabulary_id" db:"vocabulary_id"`
	RawSentences string    `json:"sentences" db:"sentences"` // serialized, see Sentences
	Vietnamese   string    `json:"vietnamese" db:"vietnamese"`
	Grammar      string    `json:"grammar" db:"grammar"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Sentences splits the stored sentence list, dropping blanks.
func (e *Example) Sentences() []string {
	parts := strings.Split(e.RawSentences, sentenceSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Usable reports whether the example has anything to practice against.
func (e *Example) Usable() bool {
	return len(e.Sentences()) > 0
}

// JoinSentences serializes a sentence list for storage, dropping blanks and
// deduplicating while preserving order.
func JoinSentences(sentences []string) string {
	seen := make(map[string]bool, len(sentences))
	kept := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		kept = append(kept, s)
	}
	return strings.Join(kept, sentenceSeparator)
}
