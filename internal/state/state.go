// Package state holds the four persisted values of the application.
//
// Each value lives in a Binding: an in-memory copy that is written through to
// the persistent store on every change. There is no batching; the in-memory
// value stays authoritative even when a save fails.
package state

import (
	"context"
	"slices"
	"sync"

	"finanzas/internal/core"
	"finanzas/internal/persist"
)

// Binding is one persisted value.
type Binding[T any] struct {
	mu    sync.Mutex
	key   string
	value T
	store persist.Store
	clone func(T) T
}

// NewBinding loads key from store, falling back to def.
// clone, when set, is used to hand out copies so callers cannot alias the
// stored value.
func NewBinding[T any](ctx context.Context, store persist.Store, key string, def T, clone func(T) T) *Binding[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Binding[T]{
		key:   key,
		value: clone(persist.LoadOr(ctx, store, key, def)),
		store: store,
		clone: clone,
	}
}

// Key returns the persistence key.
func (b *Binding[T]) Key() string {
	return b.key
}

// Get returns a copy of the current value.
func (b *Binding[T]) Get() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clone(b.value)
}

// Replace swaps in v and persists it.
func (b *Binding[T]) Replace(ctx context.Context, v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.set(ctx, v)
}

// Update applies fn to a copy of the current value and persists the result.
// fn runs under the binding lock and must not call back into b.
func (b *Binding[T]) Update(ctx context.Context, fn func(T) T) T {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := fn(b.clone(b.value))
	b.set(ctx, next)
	return b.clone(next)
}

func (b *Binding[T]) set(ctx context.Context, v T) {
	b.value = b.clone(v)
	// Save logs its own failures; memory wins regardless.
	_ = b.store.Save(ctx, b.key, b.value)
}

// State groups the application's persisted values.
type State struct {
	Transactions *Binding[[]core.Transaction]
	Categories   *Binding[[]string]
	Users        *Binding[[]string]
	Budget       *Binding[core.Money]
}

// Open loads every value from store, seeding defaults for missing ones.
// Seeds are not written back until the first change.
func Open(ctx context.Context, store persist.Store) *State {
	return &State{
		Transactions: NewBinding(ctx, store, persist.KeyTransactions, []core.Transaction{}, cloneSlice[core.Transaction]),
		Categories:   NewBinding(ctx, store, persist.KeyCategories, core.DefaultCategories, cloneSlice[string]),
		Users:        NewBinding(ctx, store, persist.KeyUsers, core.DefaultUsers, cloneSlice[string]),
		Budget:       NewBinding(ctx, store, persist.KeyBudget, core.DefaultBudget, nil),
	}
}

func cloneSlice[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return slices.Clone(s)
}
