// Package persist stores named values in a durable key-value backend.
//
// Reads never fail from the caller's point of view: LoadOr falls back to a
// default when a key is missing or its payload cannot be decoded. Writes that
// fail are logged and reported, but callers keep their in-memory value, so
// memory and disk may disagree until the next successful save.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"finanzas/internal/log"
	"finanzas/internal/storage"
)

// Keys of the persisted values.
const (
	KeyTransactions = "transactions"
	KeyCategories   = "categories"
	KeyUsers        = "users"
	KeyBudget       = "budget"
)

// Store loads and saves named values.
type Store interface {
	Load(ctx context.Context, key string, dst any) error
	Save(ctx context.Context, key string, v any) error
}

// JSONStore implements Store over a storage.KV using JSON payloads.
type JSONStore struct {
	kv     storage.KV
	logger *log.Logger
}

func NewJSONStore(kv storage.KV, logger *log.Logger) *JSONStore {
	if logger == nil {
		logger = log.Discard()
	}
	return &JSONStore{kv: kv, logger: logger.WithComponent(log.ComponentPersist)}
}

// Load decodes the value stored under key into dst.
func (s *JSONStore) Load(ctx context.Context, key string, dst any) error {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.DebugContext(ctx, "No stored value, using default",
			log.FieldKey, key, log.FieldOperation, log.OpLoad)
		return err
	}
	if err != nil {
		fields := log.NewFields().WithOperation(log.OpLoad).WithError(err)
		fields[log.FieldKey] = key
		s.logger.WarnContext(ctx, "Failed to read stored value", fields.ToSlice()...)
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.WarnContext(ctx, "Corrupt stored value, using default",
			log.FieldKey, key,
			log.FieldBytes, len(raw),
			log.FieldError, err.Error(),
			"error_type", log.ErrorTypeDecode)
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Save encodes v and writes it under key.
func (s *JSONStore) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode value",
			log.FieldKey, key, log.FieldError, err.Error(), "error_type", log.ErrorTypeInternal)
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, raw); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save value",
			log.FieldKey, key,
			log.FieldBytes, len(raw),
			log.FieldError, err.Error(),
			"error_type", log.ErrorTypeStorage)
		return fmt.Errorf("write %s: %w", key, err)
	}
	s.logger.DebugContext(ctx, "Value saved",
		log.FieldKey, key, log.FieldBytes, len(raw), log.FieldOperation, log.OpSave)
	return nil
}

// LoadOr returns the value stored under key, or def when it is missing or
// unreadable.
func LoadOr[T any](ctx context.Context, s Store, key string, def T) T {
	var v T
	if err := s.Load(ctx, key, &v); err != nil {
		return def
	}
	return v
}
