// Package cache keeps an in-memory, key-addressed projection of product
// lists fetched from the backend. Entries follow a stale-until-revalidated
// policy: after any mutation the affected entry is marked stale and must be
// refreshed from the server before it is authoritative again.
//
// Mutations can be applied optimistically: OptimisticUpdate transforms an
// entry locally and hands back an Update that either commits the change or
// rolls the entry back to its pre-transform snapshot.
package cache

import (
	"sync"

	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
)

type entry struct {
	items []models.Product
	stale bool
}

// ProductCache is safe for concurrent use; bulk-delete completions land
// from worker goroutines.
type ProductCache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *ProductCache {
	return &ProductCache{entries: make(map[string]*entry)}
}

// Get returns the cached list for key. The returned slice is a copy.
func (c *ProductCache) Get(key string) ([]models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return cloneProducts(e.items), true
}

// Set replaces the entry for key with a fresh, authoritative list.
func (c *ProductCache) Set(key string, items []models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{items: cloneProducts(items)}
}

// Invalidate drops the entry for key entirely.
func (c *ProductCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// InvalidateAll drops every entry.
func (c *ProductCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
}

// MarkStale flags the entry for key as needing a server refresh. The
// cached items remain readable until then.
func (c *ProductCache) MarkStale(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.stale = true
	}
}

// MarkAllStale flags every entry for refresh. Used after mutations whose
// effect on other filter keys cannot be known locally.
func (c *ProductCache) MarkAllStale() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.stale = true
	}
}

// IsStale reports whether the entry for key exists and awaits a refresh.
func (c *ProductCache) IsStale(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return ok && e.stale
}

// Update tracks one in-flight optimistic mutation of a single entry.
// Exactly one of Commit or Rollback must be called; later calls are no-ops.
type Update struct {
	c        *ProductCache
	key      string
	snapshot []models.Product
	done     bool
}

// OptimisticUpdate applies transform to the entry for key and remembers the
// pre-transform snapshot. It reports false (and does nothing) when the key
// has no entry to transform.
func (c *ProductCache) OptimisticUpdate(key string, transform func([]models.Product) []models.Product) (*Update, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	snapshot := cloneProducts(e.items)
	e.items = transform(cloneProducts(e.items))

	return &Update{c: c, key: key, snapshot: snapshot}, true
}

// Commit discards the snapshot and marks the entry stale so the next read
// triggers a server refresh.
func (u *Update) Commit() {
	u.c.mu.Lock()
	defer u.c.mu.Unlock()

	if u.done {
		return
	}
	u.done = true
	u.snapshot = nil

	if e, ok := u.c.entries[u.key]; ok {
		e.stale = true
	}
}

// Rollback restores the pre-transform snapshot. The entry is still marked
// stale: the failed mutation may have partially taken effect server-side.
func (u *Update) Rollback() {
	u.c.mu.Lock()
	defer u.c.mu.Unlock()

	if u.done {
		return
	}
	u.done = true

	if e, ok := u.c.entries[u.key]; ok {
		e.items = u.snapshot
		e.stale = true
	}
	u.snapshot = nil
}

func cloneProducts(items []models.Product) []models.Product {
	if items == nil {
		return nil
	}
	out := make([]models.Product, len(items))
	copy(out, items)
	return out
}
