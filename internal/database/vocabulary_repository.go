package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabbot/pkg/models"
)

// VocabularyRepository handles database operations for vocabulary items
type VocabularyRepository struct{}

// NewVocabularyRepository creates a new repository instance
func NewVocabularyRepository() *VocabularyRepository {
	return &VocabularyRepository{}
}

// GetAllWithExamples returns every item of a category with its examples
// attached. An empty category returns the whole pool.
func (r *VocabularyRepository) GetAllWithExamples(category models.Category) ([]models.Vocabulary, error) {
	var items []models.Vocabulary
	var err error
	if category == "" {
		err = DB.Select(&items, "SELECT * FROM vocabularies ORDER BY word")
	} else {
		err = DB.Select(&items, DB.Rebind("SELECT * FROM vocabularies WHERE category = ? ORDER BY word"), category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabularies: %v", err)
	}
	if err := r.attachExamples(items); err != nil {
		return nil, err
	}
	return items, nil
}

// attachExamples batch-loads examples for the given items to avoid one
// query per item.
func (r *VocabularyRepository) attachExamples(items []models.Vocabulary) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}

	query, args, err := sqlx.In("SELECT * FROM examples WHERE vocabulary_id IN (?) ORDER BY id", ids)
	if err != nil {
		return fmt.Errorf("failed to build examples query: %v", err)
	}
	var examples []models.Example
	if err := DB.Select(&examples, DB.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to get examples: %v", err)
	}

	byVocab := make(map[int64][]models.Example, len(items))
	for _, e := range examples {
		byVocab[e.VocabularyID] = append(byVocab[e.VocabularyID], e)
	}
	for i := range items {
		items[i].Examples = byVocab[items[i].ID]
	}
	return nil
}

// GetByID returns one item with its examples, or nil when it does not exist.
func (r *VocabularyRepository) GetByID(id int64) (*models.Vocabulary, error) {
	var item models.Vocabulary
	err := DB.Get(&item, DB.Rebind("SELECT * FROM vocabularies WHERE id = ?"), id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary by ID: %v", err)
	}
	single := []models.Vocabulary{item}
	if err := r.attachExamples(single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// FindByWord looks an item up by headword within a category, ignoring case.
func (r *VocabularyRepository) FindByWord(word string, category models.Category) (*models.Vocabulary, error) {
	var item models.Vocabulary
	query := "SELECT * FROM vocabularies WHERE LOWER(word) = LOWER(?) AND category = ?"
	err := DB.Get(&item, DB.Rebind(query), word, category)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vocabulary by word: %v", err)
	}
	single := []models.Vocabulary{item}
	if err := r.attachExamples(single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// Create inserts a new item
func (r *VocabularyRepository) Create(v *models.Vocabulary) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	v.UpdatedAt = v.CreatedAt

	if isPostgres() {
		query := `
			INSERT INTO vocabularies (word, category, total_attempts, correct_attempts, memory_score, last10_attempts, last_studied_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id
		`
		return DB.QueryRow(
			query,
			v.Word, v.Category, v.TotalAttempts, v.CorrectAttempts,
			v.MemoryScore, v.Last10, v.LastStudiedAt, v.CreatedAt, v.UpdatedAt,
		).Scan(&v.ID)
	}

	// SQLite path, no RETURNING
	query := `
		INSERT INTO vocabularies (word, category, total_attempts, correct_attempts, memory_score, last10_attempts, last_studied_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := DB.Exec(
		query,
		v.Word, v.Category, v.TotalAttempts, v.CorrectAttempts,
		v.MemoryScore, v.Last10, v.LastStudiedAt, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create vocabulary: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	v.ID = id
	return nil
}

// Update modifies an existing item
func (r *VocabularyRepository) Update(v *models.Vocabulary) error {
	v.UpdatedAt = time.Now()
	query := `
		UPDATE vocabularies SET
			word = ?,
			category = ?,
			total_attempts = ?,
			correct_attempts = ?,
			memory_score = ?,
			last10_attempts = ?,
			last_studied_at = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := DB.Exec(
		DB.Rebind(query),
		v.Word, v.Category, v.TotalAttempts, v.CorrectAttempts,
		v.MemoryScore, v.Last10, v.LastStudiedAt, v.UpdatedAt, v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vocabulary: %v", err)
	}
	return nil
}

// UpdateAttemptStats persists the attempt counters of one item in a single
// statement, so a logical attempt is never partially visible.
func (r *VocabularyRepository) UpdateAttemptStats(v *models.Vocabulary) error {
	query := `
		UPDATE vocabularies SET
			total_attempts = ?,
			correct_attempts = ?,
			memory_score = ?,
			last10_attempts = ?,
			last_studied_at = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := DB.Exec(
		DB.Rebind(query),
		v.TotalAttempts, v.CorrectAttempts, v.MemoryScore,
		v.Last10, v.LastStudiedAt, time.Now(), v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attempt stats: %v", err)
	}
	return nil
}

// Delete removes an item and, via the schema's cascade, its examples.
func (r *VocabularyRepository) Delete(id int64) error {
	_, err := DB.Exec(DB.Rebind("DELETE FROM vocabularies WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete vocabulary: %v", err)
	}
	return nil
}

// Search finds items whose word or example sentences contain the pattern.
func (r *VocabularyRepository) Search(pattern string) ([]models.Vocabulary, error) {
	var items []models.Vocabulary
	like := "%" + pattern + "%"
	query := `
		SELECT DISTINCT v.* FROM vocabularies v
		LEFT JOIN examples e ON e.vocabulary_id = v.id
		WHERE LOWER(v.word) LIKE LOWER(?) OR LOWER(e.sentences) LIKE LOWER(?)
		ORDER BY v.word
	`
	if err := DB.Select(&items, DB.Rebind(query), like, like); err != nil {
		return nil, fmt.Errorf("failed to search vocabularies: %v", err)
	}
	if err := r.attachExamples(items); err != nil {
		return nil, err
	}
	return items, nil
}
