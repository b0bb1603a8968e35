package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/vocabbot/pkg/models"
)

// QueueRepository persists the ordered queue id list per category so the
// working set survives restarts.
type QueueRepository struct{}

// NewQueueRepository creates a new repository instance
func NewQueueRepository() *QueueRepository {
	return &QueueRepository{}
}

// LoadIDs returns the persisted queue ids for a category, oldest-order
// preserved. No persisted queue yields an empty list. Unparseable entries
// are dropped silently.
func (r *QueueRepository) LoadIDs(category models.Category) ([]int64, error) {
	var raw string
	err := DB.Get(&raw, DB.Rebind("SELECT item_ids FROM queue_state WHERE category = ?"), category)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load queue state: %v", err)
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// SaveIDs replaces the persisted queue for a category.
func (r *QueueRepository) SaveIDs(category models.Category, ids []int64) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	raw := strings.Join(parts, ",")

	query := `
		INSERT INTO queue_state (category, item_ids, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (category) DO UPDATE SET item_ids = excluded.item_ids, updated_at = excluded.updated_at
	`
	_, err := DB.Exec(DB.Rebind(query), category, raw, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save queue state: %v", err)
	}
	return nil
}

// Clear drops the persisted queue for a category.
func (r *QueueRepository) Clear(category models.Category) error {
	_, err := DB.Exec(DB.Rebind("DELETE FROM queue_state WHERE category = ?"), category)
	if err != nil {
		return fmt.Errorf("failed to clear queue state: %v", err)
	}
	return nil
}
