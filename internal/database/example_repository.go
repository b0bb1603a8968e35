package database

import (
	"fmt"
	"time"

	"github.com/example/vocabbot/pkg/models"
)

// ExampleRepository handles database operations for examples
type ExampleRepository struct{}

// NewExampleRepository creates a new repository instance
func NewExampleRepository() *ExampleRepository {
	return &ExampleRepository{}
}

// GetByVocabulary returns the examples of one item in insertion order.
func (r *ExampleRepository) GetByVocabulary(vocabularyID int64) ([]models.Example, error) {
	var examples []models.Example
	query := "SELECT * FROM examples WHERE vocabulary_id = ? ORDER BY id"
	if err := DB.Select(&examples, DB.Rebind(query), vocabularyID); err != nil {
		return nil, fmt.Errorf("failed to get examples: %v", err)
	}
	return examples, nil
}

// Create inserts a new example
func (r *ExampleRepository) Create(e *models.Example) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.UpdatedAt = e.CreatedAt

	if isPostgres() {
		query := `
			INSERT INTO examples (vocabulary_id, sentences, vietnamese, grammar, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		return DB.QueryRow(query, e.VocabularyID, e.RawSentences, e.Vietnamese, e.Grammar, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	}

	query := `
		INSERT INTO examples (vocabulary_id, sentences, vietnamese, grammar, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := DB.Exec(query, e.VocabularyID, e.RawSentences, e.Vietnamese, e.Grammar, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create example: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	e.ID = id
	return nil
}

// Update modifies an existing example
func (r *ExampleRepository) Update(e *models.Example) error {
	e.UpdatedAt = time.Now()
	query := `
		UPDATE examples SET
			sentences = ?,
			vietnamese = ?,
			grammar = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := DB.Exec(DB.Rebind(query), e.RawSentences, e.Vietnamese, e.Grammar, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update example: %v", err)
	}
	return nil
}

// Delete removes an example
func (r *ExampleRepository) Delete(id int64) error {
	_, err := DB.Exec(DB.Rebind("DELETE FROM examples WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete example: %v", err)
	}
	return nil
}
