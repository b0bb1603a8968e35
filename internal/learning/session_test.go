package learning

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabbot/internal/progress"
	"github.com/example/vocabbot/pkg/models"
)

type memProgressStore struct {
	state models.ProgressState
	saves int
}

func (s *memProgressStore) LoadOrCreate(now time.Time) (models.ProgressState, error) {
	if s.state.SessionStart.IsZero() {
		s.state = models.ProgressState{ID: 1, SessionStart: now, UpdatedAt: now}
	}
	return s.state, nil
}

func (s *memProgressStore) Save(state models.ProgressState) error {
	s.state = state
	s.saves++
	return nil
}

type countingStats struct {
	updates int
	last    models.Vocabulary
}

func (c *countingStats) UpdateAttemptStats(v *models.Vocabulary) error {
	c.updates++
	c.last = *v
	return nil
}

func sessionItem(id int64, word, sentence, vietnamese string, score float64, attempts, correct int, lastStudied time.Time) models.Vocabulary {
	return models.Vocabulary{
		ID:              id,
		Word:            word,
		Category:        models.CategoryGeneral,
		TotalAttempts:   attempts,
		CorrectAttempts: correct,
		MemoryScore:     score,
		LastStudiedAt:   lastStudied,
		CreatedAt:       time.Now().Add(-30 * 24 * time.Hour),
		Examples: []models.Example{
			{ID: id * 100, VocabularyID: id, RawSentences: sentence, Vietnamese: vietnamese},
		},
	}
}

// newTestSession wires a session over an in-memory repository with a frozen
// clock the caller can move.
func newTestSession(t *testing.T, queueSize int, pool ...models.Vocabulary) (*Session, *fakeRepo, *countingStats, *time.Time) {
	t.Helper()

	repo := newFakeRepo(pool...)
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	tracker, err := progress.NewTracker(&memProgressStore{}, now)
	require.NoError(t, err)

	stats := &countingStats{}
	engine := NewEngine(repo, Config{QueueSize: queueSize, Rand: rand.New(rand.NewSource(7))})
	s := NewSession(engine, tracker, stats, clock)
	require.NoError(t, s.BuildQueue(models.CategoryGeneral))
	return s, repo, stats, &now
}

func TestSubmitAnswerNoActiveItem(t *testing.T) {
	t.Parallel()

	s, _, _, _ := newTestSession(t, 5,
		sessionItem(1, "sell", "She sells shoes", "cô ấy bán giày", 0, 0, 0, time.Time{}),
	)
	// No Advance yet: nothing is loaded.
	_, err := s.SubmitAnswer("She sells shoes")
	assert.ErrorIs(t, err, ErrNoActiveItem)
}

func TestSubmitAnswerCorrect(t *testing.T) {
	t.Parallel()

	s, _, stats, _ := newTestSession(t, 5,
		sessionItem(1, "sell", "She sells shoes", "cô ấy bán giày", 0, 0, 0, time.Time{}),
	)
	item := s.Advance()
	require.NotNil(t, item)

	res, err := s.SubmitAnswer("She sells shoes")
	require.NoError(t, err)

	assert.True(t, res.Correct)
	assert.True(t, res.GroupCompleted)
	assert.Empty(t, res.Warning)
	assert.Nil(t, res.Diff)
	assert.Equal(t, 1, stats.updates)
	assert.Equal(t, 1, stats.last.TotalAttempts)
	assert.Equal(t, 1, stats.last.CorrectAttempts)
	assert.Equal(t, 1, s.ProgressSummary().WordsLearned)
	assert.Nil(t, s.CurrentExample(), "the only prompt is finished for this pass")
}

func TestSubmitAnswerIncorrect(t *testing.T) {
	t.Parallel()

	s, _, stats, _ := newTestSession(t, 5,
		sessionItem(1, "sell", "She sells shoes", "cô ấy bán giày", 0, 0, 0, time.Time{}),
	)
	require.NotNil(t, s.Advance())

	res, err := s.SubmitAnswer("She sell shoe")
	require.NoError(t, err)

	assert.False(t, res.Correct)
	require.NotNil(t, res.Diff)
	assert.Less(t, res.Diff.Similarity, 100)
	assert.NotEmpty(t, res.Diff.Words)
	assert.Equal(t, "She sells shoes", res.Diff.CorrectAnswer)

	assert.Equal(t, 1, stats.updates)
	assert.Equal(t, 1, stats.last.TotalAttempts)
	assert.Equal(t, 0, stats.last.CorrectAttempts)
	assert.Equal(t, 0, s.ProgressSummary().WordsLearned, "wrong answers never count toward the goal")
	assert.NotNil(t, s.CurrentExample(), "the prompt stays pending")
}

func TestSubmitAnswerOtherPromptWarning(t *testing.T) {
	t.Parallel()

	item := sessionItem(1, "drink", "I drink coffee", "tôi uống cà phê", 0, 0, 0, time.Time{})
	item.Examples = append(item.Examples, models.Example{
		ID: 101, VocabularyID: 1, RawSentences: "I drink tea", Vietnamese: "tôi uống trà",
	})

	s, _, stats, _ := newTestSession(t, 5, item)
	require.NotNil(t, s.Advance())

	// The shown prompt is the first example; the answer fits the second.
	res, err := s.SubmitAnswer("I drink tea")
	require.NoError(t, err)

	assert.False(t, res.Correct)
	assert.NotEmpty(t, res.Warning)
	assert.Nil(t, res.Diff)
	assert.Equal(t, 0, stats.updates, "a redirected answer records no attempt")
}

func TestSubmitAnswerMasteryReplacesItem(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	// One correct answer away from the lifetime mastery gate, stale enough to
	// rank into the queue ahead of the well-known candidate.
	almost := sessionItem(1, "finish", "He finished the race", "anh ấy về đích", 1.0, 9, 9, now.Add(-5*24*time.Hour))
	weak := sessionItem(2, "begin", "We begin at dawn", "chúng tôi bắt đầu", 0, 0, 0, time.Time{})
	candidate := sessionItem(3, "carry", "They carry water", "họ mang nước", 0.9, 5, 4, now.Add(-time.Hour))

	s, _, _, _ := newTestSession(t, 2, almost, weak, candidate)
	require.ElementsMatch(t, []int64{1, 2}, s.engine.IDs())

	item := s.Advance()
	require.NotNil(t, item)
	require.Equal(t, int64(1), item.ID)

	res, err := s.SubmitAnswer("He finished the race")
	require.NoError(t, err)

	assert.True(t, res.Correct)
	assert.True(t, res.ItemMastered)
	assert.False(t, res.AllCaughtUp)

	ids := s.engine.IDs()
	assert.NotContains(t, ids, int64(1), "the mastered item left the queue")
	assert.Contains(t, ids, int64(3), "the outside candidate took its slot")
	require.NotNil(t, s.Current())
	assert.Equal(t, int64(3), s.Current().ID)
	assert.NotNil(t, s.CurrentExample(), "the replacement starts a fresh pass")
}

func TestSubmitAnswerMasteryAllCaughtUp(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	almost := sessionItem(1, "finish", "He finished the race", "anh ấy về đích", 1.0, 9, 9, now.Add(-5*24*time.Hour))
	weak := sessionItem(2, "begin", "We begin at dawn", "chúng tôi bắt đầu", 0, 0, 0, time.Time{})

	s, _, _, _ := newTestSession(t, 2, almost, weak)
	item := s.Advance()
	require.NotNil(t, item)
	require.Equal(t, int64(1), item.ID)

	res, err := s.SubmitAnswer("He finished the race")
	require.NoError(t, err)

	assert.True(t, res.ItemMastered)
	assert.True(t, res.AllCaughtUp, "nothing outside the queue can replace it")
	assert.Contains(t, s.engine.IDs(), int64(1), "the mastered item keeps its slot")
}

func TestAdvanceResetsPassProgress(t *testing.T) {
	t.Parallel()

	s, _, _, _ := newTestSession(t, 2,
		sessionItem(1, "sell", "She sells shoes", "cô ấy bán giày", 0, 0, 0, time.Time{}),
		sessionItem(2, "buy", "He buys bread", "anh ấy mua bánh mì", 0, 0, 0, time.Time{}),
	)
	first := s.Advance()
	require.NotNil(t, first)

	ex := s.CurrentExample()
	require.NotNil(t, ex)
	_, err := s.SubmitAnswer(ex.Sentences()[0])
	require.NoError(t, err)
	require.Nil(t, s.CurrentExample())

	// Wrapping back around reopens the prompt.
	s.Advance()
	back := s.Advance()
	require.NotNil(t, back)
	assert.Equal(t, first.ID, back.ID)
	assert.NotNil(t, s.CurrentExample())
}

func TestProgressSummaryTracksGoal(t *testing.T) {
	t.Parallel()

	s, _, _, now := newTestSession(t, 5,
		sessionItem(1, "sell", "She sells shoes", "cô ấy bán giày", 0, 0, 0, time.Time{}),
	)
	require.NotNil(t, s.Advance())
	_, err := s.SubmitAnswer("She sells shoes")
	require.NoError(t, err)

	*now = now.Add(10 * time.Minute)
	sum := s.ProgressSummary()
	assert.Equal(t, 1, sum.WordsLearned)
	assert.Equal(t, 2, sum.Goal, "ten minutes expect two words")
	assert.Equal(t, 1, sum.Debt)
	assert.Equal(t, 50, sum.ProgressPercentage)
	assert.Equal(t, 1, sum.Level)
}
