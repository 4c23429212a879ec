package store

import (
	"context"

	"jobmate/jobboard-service/internal/model"
)

// Record is implemented by every model type through its embedded model.Meta.
type Record interface {
	Base() *model.Meta
}

// Collection is a typed accessor over one named collection of the document.
// Each method is a full read (or read-modify-write) of the document.
type Collection[T any, P interface {
	*T
	Record
}] struct {
	store *Store
	name  string
	slot  func(*Document) *[]T
}

func newCollection[T any, P interface {
	*T
	Record
}](s *Store, name string, slot func(*Document) *[]T) *Collection[T, P] {
	return &Collection[T, P]{store: s, name: name, slot: slot}
}

// Name returns the collection's key in the serialized document.
func (c *Collection[T, P]) Name() string { return c.name }

// ─── In-document helpers ─────────────────────────────────────────────────────
//
// These operate on a document already loaded inside Store.Update or
// Store.View, for operations spanning several collections.

// Items returns a pointer to the collection's slice within d.
func (c *Collection[T, P]) Items(d *Document) *[]T { return c.slot(d) }

// Lookup returns a pointer to the record with id inside d, or nil.
func (c *Collection[T, P]) Lookup(d *Document, id string) P {
	items := c.slot(d)
	for i := range *items {
		p := P(&(*items)[i])
		if p.Base().ID == id {
			return p
		}
	}
	return nil
}

// Insert stamps item with a fresh id and createdAt and appends it to d.
func (c *Collection[T, P]) Insert(d *Document, item T) T {
	m := P(&item).Base()
	m.ID = c.store.newID()
	m.CreatedAt = c.store.Now()
	m.UpdatedAt = nil
	items := c.slot(d)
	*items = append(*items, item)
	return item
}

// Touch sets updatedAt on a record obtained from Lookup.
func (c *Collection[T, P]) Touch(p P) {
	now := c.store.Now()
	p.Base().UpdatedAt = &now
}

// ─── Whole-document operations ───────────────────────────────────────────────

// All returns every record, in insertion order. Never nil.
func (c *Collection[T, P]) All(ctx context.Context) ([]T, error) {
	var out []T
	err := c.store.View(ctx, func(d *Document) error {
		out = *c.slot(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Find returns the records matching pred, in insertion order. Never nil.
func (c *Collection[T, P]) Find(ctx context.Context, pred func(*T) bool) ([]T, error) {
	all, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for i := range all {
		if pred(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// First returns the first record matching pred, or ErrRecordNotFound.
func (c *Collection[T, P]) First(ctx context.Context, pred func(*T) bool) (T, error) {
	var zero T
	all, err := c.All(ctx)
	if err != nil {
		return zero, err
	}
	for i := range all {
		if pred(&all[i]) {
			return all[i], nil
		}
	}
	return zero, ErrRecordNotFound
}

// Get returns the record with id, or ErrRecordNotFound.
func (c *Collection[T, P]) Get(ctx context.Context, id string) (T, error) {
	return c.First(ctx, func(t *T) bool { return P(t).Base().ID == id })
}

// Count returns the number of records.
func (c *Collection[T, P]) Count(ctx context.Context) (int, error) {
	all, err := c.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// Add stamps item with id and createdAt, appends it and returns it.
func (c *Collection[T, P]) Add(ctx context.Context, item T) (T, error) {
	return c.AddUnique(ctx, item, nil)
}

// AddUnique is Add preceded, in the same cycle, by a scan for an existing
// record satisfying conflict. A hit returns ErrConflict and writes nothing.
func (c *Collection[T, P]) AddUnique(ctx context.Context, item T, conflict func(*T) bool) (T, error) {
	var added T
	err := c.store.Update(ctx, func(d *Document) error {
		if conflict != nil {
			items := *c.slot(d)
			for i := range items {
				if conflict(&items[i]) {
					return ErrConflict
				}
			}
		}
		added = c.Insert(d, item)
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return added, nil
}

// Update applies mutate to the record with id, sets updatedAt and returns
// the merged record. The id and createdAt cannot be changed by mutate.
// A missing id returns ErrRecordNotFound and writes nothing.
func (c *Collection[T, P]) Update(ctx context.Context, id string, mutate func(*T)) (T, error) {
	var updated T
	err := c.store.Update(ctx, func(d *Document) error {
		p := c.Lookup(d, id)
		if p == nil {
			return ErrRecordNotFound
		}
		meta := *p.Base()
		mutate((*T)(p))
		p.Base().ID = meta.ID
		p.Base().CreatedAt = meta.CreatedAt
		c.Touch(p)
		updated = *(*T)(p)
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete removes the record with id. Deleting a missing id is a no-op.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) error {
	return c.DeleteWhere(ctx, func(t *T) bool { return P(t).Base().ID == id })
}

// DeleteWhere removes every record matching pred and reports nothing when
// none match.
func (c *Collection[T, P]) DeleteWhere(ctx context.Context, pred func(*T) bool) error {
	return c.store.Update(ctx, func(d *Document) error {
		items := c.slot(d)
		kept := (*items)[:0]
		for i := range *items {
			if !pred(&(*items)[i]) {
				kept = append(kept, (*items)[i])
			}
		}
		if len(kept) == len(*items) {
			return errNoChange
		}
		*items = kept
		return nil
	})
}
