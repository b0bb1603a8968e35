package database

import "github.com/example/vocabbot/pkg/models"

// LearningStore adapts the vocabulary and queue repositories to the learning
// engine's repository interface.
type LearningStore struct {
	vocab *VocabularyRepository
	queue *QueueRepository
}

// NewLearningStore creates the adapter over fresh repository instances.
func NewLearningStore() *LearningStore {
	return &LearningStore{
		vocab: NewVocabularyRepository(),
		queue: NewQueueRepository(),
	}
}

// AllByCategory returns the category pool with examples attached.
func (s *LearningStore) AllByCategory(category models.Category) ([]models.Vocabulary, error) {
	return s.vocab.GetAllWithExamples(category)
}

// LoadQueueIDs returns the persisted queue ids for the category.
func (s *LearningStore) LoadQueueIDs(category models.Category) ([]int64, error) {
	return s.queue.LoadIDs(category)
}

// SaveQueueIDs persists the queue ids for the category.
func (s *LearningStore) SaveQueueIDs(category models.Category, ids []int64) error {
	return s.queue.SaveIDs(category, ids)
}

// UpdateAttemptStats persists one item's attempt counters.
func (s *LearningStore) UpdateAttemptStats(v *models.Vocabulary) error {
	return s.vocab.UpdateAttemptStats(v)
}
