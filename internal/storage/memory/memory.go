package memory

import (
	"context"
	"errors"
	"sync"

	"finanzas/internal/storage"
)

// ErrWriteFailed is returned by Put while writes are disabled with FailWrites.
var ErrWriteFailed = errors.New("memory store: write failed")

// Store is a process-local KV. Values do not survive a restart.
type Store struct {
	mu         sync.Mutex
	values     map[string][]byte
	failWrites bool
}

func New() *Store {
	return &Store{values: make(map[string][]byte)}
}

// NewWithValues seeds the store with raw serialized values.
func NewWithValues(values map[string][]byte) *Store {
	s := New()
	for k, v := range values {
		s.values[k] = append([]byte(nil), v...)
	}
	return s
}

// Get implements storage.KV
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements storage.KV
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrWriteFailed
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// FailWrites makes every following Put fail, the way a full quota would.
func (s *Store) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
