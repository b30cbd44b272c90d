package draft

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/ms1708/academy-portal/internal/storage"
)

// Store persists an in-progress wizard snapshot under a fixed key.
// Persistence is best effort by contract: Save and Clear swallow storage
// failures, Load treats corrupt or absent data as "no draft". Losing a draft
// costs the user some re-typing; it must never break the flow.
type Store struct {
	key     string
	storage storage.Store
	logger  *zap.Logger
}

// NewStore binds a draft store to one storage key.
func NewStore(key string, store storage.Store, logger *zap.Logger) *Store {
	return &Store{key: key, storage: store, logger: logger}
}

// Save overwrites the stored draft with the given snapshot.
func (s *Store) Save(draft interface{}) {
	data, err := json.Marshal(draft)
	if err != nil {
		s.logger.Warn("draft encode failed", zap.String("key", s.key), zap.Error(err))
		return
	}
	if err := s.storage.Set(context.Background(), s.key, data); err != nil {
		s.logger.Warn("draft save failed", zap.String("key", s.key), zap.Error(err))
	}
}

// Load restores the stored draft into out. Returns false, leaving out
// untouched, when nothing usable is stored.
func (s *Store) Load(out interface{}) bool {
	data, err := s.storage.Get(context.Background(), s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("draft load failed", zap.String("key", s.key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("draft corrupt", zap.String("key", s.key), zap.Error(err))
		return false
	}
	return true
}

// Clear removes the stored draft.
func (s *Store) Clear() {
	if err := s.storage.Delete(context.Background(), s.key); err != nil {
		s.logger.Warn("draft clear failed", zap.String("key", s.key), zap.Error(err))
	}
}
