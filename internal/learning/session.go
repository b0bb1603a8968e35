package learning

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/vocabbot/internal/matching"
	"github.com/example/vocabbot/internal/progress"
	"github.com/example/vocabbot/pkg/models"
)

// ErrNoActiveItem is returned when an answer arrives with no item loaded.
var ErrNoActiveItem = errors.New("no active vocabulary item")

// StatsStore persists updated attempt statistics for one item.
type StatsStore interface {
	UpdateAttemptStats(v *models.Vocabulary) error
}

// Result is the verdict for one submitted answer.
type Result struct {
	// Correct reports whether the answer matched the current prompt.
	Correct bool
	// Warning is set when the answer matched a different prompt than the one
	// shown; no statistics are recorded in that case.
	Warning string
	// Diff explains an incorrect answer against the closest sentence.
	Diff *matching.Comparison
	// GroupCompleted reports that the current sentence group was finished.
	GroupCompleted bool
	// ItemMastered reports that the item passed the mastery gate.
	ItemMastered bool
	// AllCaughtUp is set when a mastered item could not be replaced because
	// no eligible candidate remains outside the queue.
	AllCaughtUp bool
}

// Session is the narrow command surface the UI calls. It owns the queue
// engine, the answer matcher and the progress tracker, and runs each
// user-facing action to completion before the next is accepted.
type Session struct {
	engine    *Engine
	tracker   *progress.Tracker
	stats     StatsStore
	clock     func() time.Time
	completed map[int64]bool // example ids finished during the current pass
}

// NewSession wires a session. clock may be nil, defaulting to time.Now.
func NewSession(engine *Engine, tracker *progress.Tracker, stats StatsStore, clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		engine:    engine,
		tracker:   tracker,
		stats:     stats,
		clock:     clock,
		completed: make(map[int64]bool),
	}
}

// BuildQueue rebuilds the working set for the category from scratch,
// discarding any persisted queue and per-pass completion state.
func (s *Session) BuildQueue(category models.Category) error {
	s.completed = make(map[int64]bool)
	return s.engine.Rebuild(category, s.clock())
}

// Resume restores the persisted working set for the category, refilling any
// shortfall.
func (s *Session) Resume(category models.Category) error {
	s.completed = make(map[int64]bool)
	return s.engine.Resume(category, s.clock())
}

// Current returns the active item, or nil when none is loaded.
func (s *Session) Current() *models.Vocabulary {
	return s.engine.Current()
}

// Advance loads the next queue item and resets its pass progress.
func (s *Session) Advance() *models.Vocabulary {
	s.completed = make(map[int64]bool)
	return s.engine.Advance()
}

// QueueLen reports the current queue size.
func (s *Session) QueueLen() int { return s.engine.Len() }

// Category reports the category the session is scoped to.
func (s *Session) Category() models.Category { return s.engine.Category() }

// CurrentExample returns the prompt currently shown: the first usable
// example of the active item not yet completed this pass. nil means the
// item has no pending prompts left.
func (s *Session) CurrentExample() *models.Example {
	item := s.engine.Current()
	if item == nil {
		return nil
	}
	for _, e := range item.UsableExamples() {
		if !s.completed[e.ID] {
			ex := e
			return &ex
		}
	}
	return nil
}

// SubmitAnswer grades free-text input against the current prompt, records
// the attempt, and rotates the item out of the queue once mastered.
func (s *Session) SubmitAnswer(text string) (Result, error) {
	item := s.engine.Current()
	if item == nil {
		return Result{}, ErrNoActiveItem
	}
	ex := s.CurrentExample()
	if ex == nil {
		return Result{}, ErrNoActiveItem
	}
	now := s.clock()

	if matching.MatchesAnySentence(text, *ex) {
		return s.acceptAnswer(item, ex, now)
	}

	// The answer may target a different prompt of the same item, including
	// one already completed this pass. That is a soft warning: the input is
	// discarded and no attempt is recorded either way.
	for _, other := range item.UsableExamples() {
		if other.ID == ex.ID {
			continue
		}
		if matching.MatchesAnySentence(text, other) {
			return Result{
				Warning: fmt.Sprintf("That answers a different prompt (%q). Please answer the one shown.", other.Vietnamese),
			}, nil
		}
	}

	progress.RecordAttempt(item, false, now)
	if err := s.stats.UpdateAttemptStats(item); err != nil {
		return Result{}, fmt.Errorf("failed to record attempt: %v", err)
	}

	best, _ := matching.BestMatch(text, ex.Sentences())
	diff := matching.CompareStrings(text, best)
	return Result{Diff: &diff}, nil
}

func (s *Session) acceptAnswer(item *models.Vocabulary, ex *models.Example, now time.Time) (Result, error) {
	progress.RecordAttempt(item, true, now)
	if err := s.stats.UpdateAttemptStats(item); err != nil {
		return Result{}, fmt.Errorf("failed to record attempt: %v", err)
	}

	res := Result{Correct: true, GroupCompleted: true}
	s.completed[ex.ID] = true
	if err := s.tracker.AddCompletedWord(); err != nil {
		return res, err
	}

	if s.engine.cfg.Mastered(item) {
		res.ItemMastered = true
		replaced, err := s.engine.ReplaceMastered(item.ID, now)
		if err != nil {
			return res, err
		}
		res.AllCaughtUp = !replaced
		if replaced {
			// The slot now holds a different item; its pass starts fresh.
			s.completed = make(map[int64]bool)
		}
	}
	return res, nil
}

// ProgressSummary reports the learner's standing against the time goal.
func (s *Session) ProgressSummary() progress.Summary {
	return s.tracker.Summary(s.clock())
}
