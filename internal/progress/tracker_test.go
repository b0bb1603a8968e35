package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabbot/pkg/models"
)

// memoryStore keeps progress state in memory for tests.
type memoryStore struct {
	state models.ProgressState
	saves int
}

func (m *memoryStore) LoadOrCreate(now time.Time) (models.ProgressState, error) {
	if m.state.SessionStart.IsZero() {
		m.state = models.ProgressState{ID: 1, SessionStart: now}
	}
	return m.state, nil
}

func (m *memoryStore) Save(state models.ProgressState) error {
	m.state = state
	m.saves++
	return nil
}

func TestRecordAttempt(t *testing.T) {
	t.Parallel()
	now := time.Now()

	v := &models.Vocabulary{}
	RecordAttempt(v, true, now)
	RecordAttempt(v, false, now)
	RecordAttempt(v, true, now)

	assert.Equal(t, 3, v.TotalAttempts)
	assert.Equal(t, 2, v.CorrectAttempts)
	assert.InDelta(t, 2.0/3.0, v.MemoryScore, 1e-9)
	assert.Equal(t, []bool{true, false, true}, v.Last10Attempts())
	assert.Equal(t, now, v.LastStudiedAt)
}

func TestRecordAttemptRollingWindowBound(t *testing.T) {
	t.Parallel()
	now := time.Now()

	v := &models.Vocabulary{}
	for i := 0; i < 25; i++ {
		RecordAttempt(v, i%2 == 0, now)
		bits := v.Last10Attempts()
		expected := i + 1
		if expected > 10 {
			expected = 10
		}
		assert.Len(t, bits, expected)
	}

	// Oldest outcomes were evicted from the front: the window holds the
	// attempts 15..24, which started with an odd index (false).
	bits := v.Last10Attempts()
	require.Len(t, bits, 10)
	assert.False(t, bits[0])
	assert.True(t, bits[9])
	assert.Equal(t, 25, v.TotalAttempts)
}

func TestRecordAttemptMalformedHistoryStartsFresh(t *testing.T) {
	t.Parallel()

	v := &models.Vocabulary{Last10: "1x0garbage"}
	assert.Empty(t, v.Last10Attempts())

	RecordAttempt(v, true, time.Now())
	assert.Equal(t, []bool{true}, v.Last10Attempts())
}

func TestMasteryPredicates(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		item     models.Vocabulary
		lifetime bool
		rolling  bool
	}{
		{
			name:     "fresh item",
			item:     models.Vocabulary{},
			lifetime: false,
			rolling:  false,
		},
		{
			name:     "high score but too few attempts",
			item:     models.Vocabulary{TotalAttempts: 5, CorrectAttempts: 5, MemoryScore: 1.0, Last10: "11111"},
			lifetime: false,
			rolling:  false,
		},
		{
			name:     "lifetime passed",
			item:     models.Vocabulary{TotalAttempts: 10, CorrectAttempts: 7, MemoryScore: 0.7, Last10: "1110001110"},
			lifetime: true,
			rolling:  false,
		},
		{
			name:     "rolling passed only",
			item:     models.Vocabulary{TotalAttempts: 30, CorrectAttempts: 12, MemoryScore: 0.4, Last10: "1111111000"},
			lifetime: false,
			rolling:  true,
		},
		{
			name:     "both passed",
			item:     models.Vocabulary{TotalAttempts: 20, CorrectAttempts: 18, MemoryScore: 0.9, Last10: "1111111111"},
			lifetime: true,
			rolling:  true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			item := tc.item
			assert.Equal(t, tc.lifetime, MasteredLifetime(&item))
			assert.Equal(t, tc.rolling, MasteredRolling(&item))
		})
	}
}

func TestTrackerAddCompletedWordMonotonic(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	tracker, err := NewTracker(store, time.Now())
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		require.NoError(t, tracker.AddCompletedWord())
		assert.Equal(t, i, tracker.WordsLearned())
	}
	assert.Equal(t, 5, store.saves)
	assert.Equal(t, 5, store.state.WordsLearned)
}

func TestTrackerSummary(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &memoryStore{state: models.ProgressState{ID: 1, SessionStart: start}}
	tracker, err := NewTracker(store, start)
	require.NoError(t, err)

	// 50 minutes in with no words learned: goal 10, all of it debt.
	s := tracker.Summary(start.Add(50 * time.Minute))
	assert.Equal(t, 10, s.Goal)
	assert.Equal(t, 10, s.Debt)
	assert.Equal(t, 0, s.ProgressPercentage)
	assert.Equal(t, 1, s.Level)

	for i := 0; i < 7; i++ {
		require.NoError(t, tracker.AddCompletedWord())
	}
	s = tracker.Summary(start.Add(50 * time.Minute))
	assert.Equal(t, 7, s.WordsLearned)
	assert.Equal(t, 3, s.Debt)
	assert.Equal(t, 70, s.ProgressPercentage)

	// Ahead of the goal: no debt, percentage capped.
	s = tracker.Summary(start.Add(10 * time.Minute))
	assert.Equal(t, 2, s.Goal)
	assert.Equal(t, 0, s.Debt)
	assert.Equal(t, 100, s.ProgressPercentage)

	// Before any time has passed the goal is zero.
	s = tracker.Summary(start)
	assert.Equal(t, 0, s.Goal)
	assert.Equal(t, 0, s.Debt)
	assert.Equal(t, 0, s.ProgressPercentage)
}

func TestTrackerLevel(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	tracker, err := NewTracker(store, time.Now())
	require.NoError(t, err)

	for i := 0; i < WordsPerLevel; i++ {
		require.NoError(t, tracker.AddCompletedWord())
	}
	assert.Equal(t, 2, tracker.Summary(time.Now()).Level)
}
