package learning

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/example/vocabbot/internal/progress"
	"github.com/example/vocabbot/pkg/models"
)

// Repository is the storage collaborator the engine depends on. Items are
// expected to arrive with their examples loaded.
type Repository interface {
	AllByCategory(category models.Category) ([]models.Vocabulary, error)
	LoadQueueIDs(category models.Category) ([]int64, error)
	SaveQueueIDs(category models.Category, ids []int64) error
}

// Config tunes the queue engine.
type Config struct {
	// QueueSize bounds the working set.
	QueueSize int
	// ReviewShare is the fraction of the queue reserved for mastered-but-
	// stale review items.
	ReviewShare float64
	// Mastered gates replacement of queue slots.
	Mastered MasteryFunc
	// TieBreak resolves equal primary sort keys.
	TieBreak TieBreak
	// Rand drives the interleave shuffle. Left nil, a time-seeded source is
	// used.
	Rand *rand.Rand
}

// DefaultConfig returns the engine defaults: queue of 20, 30% review slots,
// lifetime mastery gate, prefer-newer tie-break.
func DefaultConfig() Config {
	return Config{
		QueueSize:   20,
		ReviewShare: 0.3,
		Mastered:    progress.MasteredLifetime,
		TieBreak:    PreferNewer,
	}
}

// Engine maintains the bounded, duplicate-free, category-scoped working set
// of items to practice.
type Engine struct {
	repo     Repository
	cfg      Config
	rng      *rand.Rand
	category models.Category
	queue    []models.Vocabulary
	current  int
}

// NewEngine creates an engine with the given repository and configuration.
func NewEngine(repo Repository, cfg Config) *Engine {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	if cfg.ReviewShare <= 0 {
		cfg.ReviewShare = DefaultConfig().ReviewShare
	}
	if cfg.Mastered == nil {
		cfg.Mastered = progress.MasteredLifetime
	}
	if cfg.TieBreak == nil {
		cfg.TieBreak = PreferNewer
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{repo: repo, cfg: cfg, rng: rng, current: -1}
}

// Category returns the category the current queue is scoped to.
func (e *Engine) Category() models.Category { return e.category }

// Len returns the current queue length.
func (e *Engine) Len() int { return len(e.queue) }

// IDs returns the ordered item ids of the queue.
func (e *Engine) IDs() []int64 {
	ids := make([]int64, len(e.queue))
	for i := range e.queue {
		ids[i] = e.queue[i].ID
	}
	return ids
}

// Items returns the queue contents in order.
func (e *Engine) Items() []models.Vocabulary {
	out := make([]models.Vocabulary, len(e.queue))
	copy(out, e.queue)
	return out
}

// Current returns the item at the queue pointer, or nil before the first
// Advance or when the queue is empty.
func (e *Engine) Current() *models.Vocabulary {
	if e.current < 0 || e.current >= len(e.queue) {
		return nil
	}
	return &e.queue[e.current]
}

// Advance moves the queue pointer forward, wrapping to the start.
func (e *Engine) Advance() *models.Vocabulary {
	if len(e.queue) == 0 {
		return nil
	}
	e.current = (e.current + 1) % len(e.queue)
	return &e.queue[e.current]
}

// Rebuild discards any persisted queue and constructs a fresh one for the
// category. An empty pool yields an empty queue, not an error.
func (e *Engine) Rebuild(category models.Category, now time.Time) error {
	pool, err := e.repo.AllByCategory(category)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary pool: %v", err)
	}

	e.category = category
	e.queue = e.selectItems(pool, nil, e.cfg.QueueSize, now)
	e.current = -1

	if err := e.repo.SaveQueueIDs(category, e.IDs()); err != nil {
		return fmt.Errorf("failed to persist queue: %v", err)
	}
	return nil
}

// Resume restores the persisted queue for the category, silently dropping
// ids that no longer resolve to usable items, then refills any shortfall
// from the live pool.
func (e *Engine) Resume(category models.Category, now time.Time) error {
	pool, err := e.repo.AllByCategory(category)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary pool: %v", err)
	}
	ids, err := e.repo.LoadQueueIDs(category)
	if err != nil {
		return fmt.Errorf("failed to load persisted queue: %v", err)
	}

	byID := make(map[int64]*models.Vocabulary, len(pool))
	for i := range pool {
		byID[pool[i].ID] = &pool[i]
	}

	e.category = category
	e.queue = e.queue[:0]
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok || seen[id] || !v.HasExamples() {
			continue
		}
		seen[id] = true
		e.queue = append(e.queue, *v)
	}

	if missing := e.cfg.QueueSize - len(e.queue); missing > 0 {
		e.queue = append(e.queue, e.selectItems(pool, seen, missing, now)...)
	}
	e.current = -1

	if err := e.repo.SaveQueueIDs(category, e.IDs()); err != nil {
		return fmt.Errorf("failed to persist queue: %v", err)
	}
	return nil
}

// Refill tops a short queue back up to the configured size.
func (e *Engine) Refill(now time.Time) error {
	missing := e.cfg.QueueSize - len(e.queue)
	if missing <= 0 {
		return nil
	}
	pool, err := e.repo.AllByCategory(e.category)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary pool: %v", err)
	}
	exclude := make(map[int64]bool, len(e.queue))
	for i := range e.queue {
		exclude[e.queue[i].ID] = true
	}
	e.queue = append(e.queue, e.selectItems(pool, exclude, missing, now)...)
	if err := e.repo.SaveQueueIDs(e.category, e.IDs()); err != nil {
		return fmt.Errorf("failed to persist queue: %v", err)
	}
	return nil
}

// ReplaceMastered swaps the mastered item out of its slot for the most
// urgent candidate not already queued. It returns false when no eligible
// replacement exists; the mastered item then keeps its slot and the caller
// can surface an "all caught up" signal.
func (e *Engine) ReplaceMastered(id int64, now time.Time) (bool, error) {
	slot := -1
	for i := range e.queue {
		if e.queue[i].ID == id {
			slot = i
			break
		}
	}
	if slot < 0 {
		return false, fmt.Errorf("item %d is not in the queue", id)
	}

	pool, err := e.repo.AllByCategory(e.category)
	if err != nil {
		return false, fmt.Errorf("failed to load vocabulary pool: %v", err)
	}
	exclude := make(map[int64]bool, len(e.queue))
	for i := range e.queue {
		exclude[e.queue[i].ID] = true
	}

	// A small interleaved candidate set keeps replacements varied instead of
	// always surfacing the single lowest scorer.
	candidates := e.selectItems(pool, exclude, 5, now)
	if len(candidates) == 0 {
		return false, nil
	}
	e.queue[slot] = candidates[0]

	if err := e.repo.SaveQueueIDs(e.category, e.IDs()); err != nil {
		return true, fmt.Errorf("failed to persist queue: %v", err)
	}
	return true, nil
}

// selectItems builds an ordered selection of up to n usable items from the
// pool, excluding the given ids: up to ReviewShare of n mastered-but-stale
// review items by review priority, the remainder not-yet-mastered items by
// effective score ascending, interleave-shuffled at the end.
func (e *Engine) selectItems(pool []models.Vocabulary, exclude map[int64]bool, n int, now time.Time) []models.Vocabulary {
	if n <= 0 {
		return nil
	}

	var fresh, stale []models.Vocabulary
	for i := range pool {
		v := pool[i]
		if exclude[v.ID] || !v.HasExamples() {
			continue
		}
		if e.cfg.Mastered(&v) {
			if daysSince(&v, now) > staleAfterDays {
				stale = append(stale, v)
			}
		} else {
			fresh = append(fresh, v)
		}
	}

	sort.SliceStable(stale, func(i, j int) bool {
		pi, pj := ReviewPriority(&stale[i], now), ReviewPriority(&stale[j], now)
		if pi != pj {
			return pi > pj
		}
		return e.cfg.TieBreak(&stale[i], &stale[j])
	})
	sort.SliceStable(fresh, func(i, j int) bool {
		si, sj := EffectiveScore(&fresh[i], now), EffectiveScore(&fresh[j], now)
		if si != sj {
			return si < sj
		}
		return e.cfg.TieBreak(&fresh[i], &fresh[j])
	})

	quota := int(float64(n) * e.cfg.ReviewShare)
	if quota > len(stale) {
		quota = len(stale)
	}
	need := n - quota
	if need > len(fresh) {
		need = len(fresh)
	}

	picked := make([]models.Vocabulary, 0, n)
	picked = append(picked, stale[:quota]...)
	picked = append(picked, fresh[:need]...)

	// Whichever pool ran short, the other absorbs the shortfall up to its
	// own size. Never pad beyond the eligible pools.
	if shortfall := n - len(picked); shortfall > 0 {
		available := len(stale) - quota
		if shortfall > available {
			shortfall = available
		}
		picked = append(picked, stale[quota:quota+shortfall]...)
	}

	return e.interleave(picked)
}

// interleave orders the selection so difficulty oscillates: sort by memory
// score ascending, split into low and high halves, shuffle each half
// independently, then alternate high and low.
func (e *Engine) interleave(items []models.Vocabulary) []models.Vocabulary {
	if len(items) < 2 {
		return items
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].MemoryScore < items[j].MemoryScore
	})

	half := (len(items) + 1) / 2
	low := append([]models.Vocabulary(nil), items[:half]...)
	high := append([]models.Vocabulary(nil), items[half:]...)
	e.rng.Shuffle(len(low), func(i, j int) { low[i], low[j] = low[j], low[i] })
	e.rng.Shuffle(len(high), func(i, j int) { high[i], high[j] = high[j], high[i] })

	out := make([]models.Vocabulary, 0, len(items))
	for i := 0; i < half; i++ {
		if i < len(high) {
			out = append(out, high[i])
		}
		out = append(out, low[i])
	}
	return out
}
