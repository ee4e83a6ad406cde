package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/yeremiapane/pos-ledger/database"
)

// Record is anything stored in a keyed collection.
type Record interface {
	RecordID() string
}

// RecordSet is a collection of records kept as one document. Writes from this
// instance are serialized; writes from other instances are last-writer-wins.
type RecordSet[T Record] struct {
	store    database.Store
	name     string
	defaults func() []T

	mu sync.Mutex
}

// NewRecordSet creates a set over the named collection. defaults, when not
// nil, seeds the collection the first time it is read.
func NewRecordSet[T Record](store database.Store, name string, defaults func() []T) *RecordSet[T] {
	return &RecordSet[T]{store: store, name: name, defaults: defaults}
}

func (r *RecordSet[T]) Name() string { return r.name }

func (r *RecordSet[T]) List(ctx context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *RecordSet[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	records, err := r.List(ctx)
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if rec.RecordID() == id {
			return rec, nil
		}
	}
	return zero, fmt.Errorf("%s %q: %w", r.name, id, ErrNotFound)
}

// Upsert replaces the record with the same id or appends it.
func (r *RecordSet[T]) Upsert(ctx context.Context, rec T) (T, error) {
	err := r.Update(ctx, func(records []T) ([]T, bool, error) {
		for i := range records {
			if records[i].RecordID() == rec.RecordID() {
				records[i] = rec
				return records, true, nil
			}
		}
		return append(records, rec), true, nil
	})
	return rec, err
}

func (r *RecordSet[T]) Delete(ctx context.Context, id string) error {
	return r.Update(ctx, func(records []T) ([]T, bool, error) {
		for i := range records {
			if records[i].RecordID() == id {
				return append(records[:i], records[i+1:]...), true, nil
			}
		}
		return nil, false, fmt.Errorf("%s %q: %w", r.name, id, ErrNotFound)
	})
}

// Update runs a read-modify-write cycle. fn reports whether it changed
// anything; unchanged results are not written back.
func (r *RecordSet[T]) Update(ctx context.Context, fn func([]T) ([]T, bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load(ctx)
	if err != nil {
		return err
	}
	next, changed, err := fn(records)
	if err != nil || !changed {
		return err
	}
	if next == nil {
		next = []T{}
	}
	return database.SaveJSON(ctx, r.store, r.name, next)
}

// Seed writes the defaults when the collection is absent.
func (r *RecordSet[T]) Seed(ctx context.Context) error {
	_, err := r.List(ctx)
	return err
}

func (r *RecordSet[T]) load(ctx context.Context) ([]T, error) {
	var records []T
	found, err := database.LoadJSON(ctx, r.store, r.name, &records)
	if err != nil {
		return nil, err
	}
	if found {
		return records, nil
	}
	if r.defaults == nil {
		return []T{}, nil
	}
	records = r.defaults()
	if err := database.SaveJSON(ctx, r.store, r.name, records); err != nil {
		return nil, err
	}
	return records, nil
}
