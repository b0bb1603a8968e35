package learning

import (
	"math"
	"time"

	"github.com/example/vocabbot/pkg/models"
)

const (
	// HalfLifeDays tunes the exponential decay of the effective score. The
	// decay is aggressive: an item untouched for about a day loses roughly
	// half its effective score, pulling well-known but neglected items back
	// into rotation quickly.
	HalfLifeDays = 0.83

	// staleAfterDays is how long a mastered item must sit unstudied before
	// it becomes a review candidate.
	staleAfterDays = 1.0
)

// daysSince returns fractional days between the item's reference time and
// now. Never-studied items fall back to their creation time; items with no
// timestamps at all read as zero (no decay).
func daysSince(v *models.Vocabulary, now time.Time) float64 {
	ref := v.LastStudiedAt
	if ref.IsZero() {
		ref = v.CreatedAt
	}
	if ref.IsZero() || ref.After(now) {
		return 0
	}
	return now.Sub(ref).Hours() / 24
}

// EffectiveScore attenuates the lifetime memory score by exponential time
// decay since the item was last studied. It is the primary urgency signal:
// lower means more worth practicing now.
func EffectiveScore(v *models.Vocabulary, now time.Time) float64 {
	return v.MemoryScore * math.Exp(-daysSince(v, now)/HalfLifeDays)
}

// ReviewPriority ranks mastered items for stale review: longer-neglected,
// lower-scoring items come first.
func ReviewPriority(v *models.Vocabulary, now time.Time) float64 {
	return daysSince(v, now) * (1 - v.MemoryScore)
}

// MasteryFunc decides whether an item is well-learned enough to be rotated
// out of the queue.
type MasteryFunc func(*models.Vocabulary) bool

// TieBreak orders two items whose primary sort keys compare equal.
type TieBreak func(a, b *models.Vocabulary) bool

// PreferNewer breaks ties by last-studied time ascending, then creation time
// descending, so newer items are studied first among equally-scored ones.
func PreferNewer(a, b *models.Vocabulary) bool {
	if !a.LastStudiedAt.Equal(b.LastStudiedAt) {
		return a.LastStudiedAt.Before(b.LastStudiedAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
