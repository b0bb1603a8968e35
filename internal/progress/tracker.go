package progress

import (
	"fmt"
	"time"

	"github.com/example/vocabbot/pkg/models"
)

const (
	// MinutesPerWord sets the pace of the time-based learning goal: one
	// completed word expected every five minutes (12 words per hour).
	MinutesPerWord = 5

	// WordsPerLevel is how many completed words advance the learner a level.
	WordsPerLevel = 50

	// rollingWindow is the length of the recent-attempt history.
	rollingWindow = 10

	masteryMinAttempts = 10
	masteryMinScore    = 0.7
	rollingPassCount   = 7
)

// RecordAttempt applies one graded attempt to the item's lifetime counters,
// memory score and rolling last-10 history. This is the sole mutation path
// for attempt statistics.
func RecordAttempt(v *models.Vocabulary, correct bool, now time.Time) {
	v.TotalAttempts++
	if correct {
		v.CorrectAttempts++
	}
	v.MemoryScore = float64(v.CorrectAttempts) / float64(v.TotalAttempts)

	bits := append(v.Last10Attempts(), correct)
	if len(bits) > rollingWindow {
		bits = bits[len(bits)-rollingWindow:]
	}
	v.Last10 = models.EncodeAttempts(bits)
	v.LastStudiedAt = now
}

// MasteredLifetime is the lifetime-ratio mastery definition: at least ten
// attempts with 70% lifetime accuracy. This gates queue replacement by
// default.
func MasteredLifetime(v *models.Vocabulary) bool {
	return v.TotalAttempts >= masteryMinAttempts && v.MemoryScore >= masteryMinScore
}

// MasteredRolling is the rolling-window mastery definition: at least seven
// of the last ten recorded attempts correct.
func MasteredRolling(v *models.Vocabulary) bool {
	correct := 0
	for _, bit := range v.Last10Attempts() {
		if bit {
			correct++
		}
	}
	return correct >= rollingPassCount
}

// Store persists the learner's progress state.
type Store interface {
	LoadOrCreate(now time.Time) (models.ProgressState, error)
	Save(state models.ProgressState) error
}

// Summary is a snapshot of the learner's standing against the time goal.
type Summary struct {
	WordsLearned       int `json:"words_learned"`
	Goal               int `json:"goal"`
	Debt               int `json:"debt"`
	ProgressPercentage int `json:"progress_percentage"`
	Level              int `json:"level"`
}

// Tracker owns the session progress state. The session start is loaded or
// created once during construction and is immutable afterwards; no setter
// exists.
type Tracker struct {
	store Store
	state models.ProgressState
}

// NewTracker loads the persisted progress state, creating it with now as
// the session start if none exists yet.
func NewTracker(store Store, now time.Time) (*Tracker, error) {
	state, err := store.LoadOrCreate(now)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress state: %v", err)
	}
	return &Tracker{store: store, state: state}, nil
}

// AddCompletedWord counts one uniquely-completed sentence group. The counter
// only ever grows.
func (t *Tracker) AddCompletedWord() error {
	t.state.WordsLearned++
	if err := t.store.Save(t.state); err != nil {
		return fmt.Errorf("failed to save progress state: %v", err)
	}
	return nil
}

// WordsLearned returns the monotonic completed-word counter.
func (t *Tracker) WordsLearned() int {
	return t.state.WordsLearned
}

// Summary computes the goal, debt and level for the given instant.
func (t *Tracker) Summary(now time.Time) Summary {
	s := Summary{
		WordsLearned: t.state.WordsLearned,
		Level:        t.state.WordsLearned/WordsPerLevel + 1,
	}

	elapsed := now.Sub(t.state.SessionStart).Minutes()
	if elapsed > 0 {
		s.Goal = int(elapsed) / MinutesPerWord
	}
	if s.Goal > t.state.WordsLearned {
		s.Debt = s.Goal - t.state.WordsLearned
	}
	if s.Goal > 0 {
		s.ProgressPercentage = t.state.WordsLearned * 100 / s.Goal
		if s.ProgressPercentage > 100 {
			s.ProgressPercentage = 100
		}
	}
	return s
}
