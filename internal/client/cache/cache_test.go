package cache

import (
	"testing"

	"github.com/dmitrijs2005/shopkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleList() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Laptop", Category: "electronics", Description: "Gaming laptop", Price: 85000, Stock: 10},
		{ID: 2, Name: "Mobile Phone", Category: "electronics", Description: "Android smartphone", Price: 30000, Stock: 25},
		{ID: 3, Name: "Novel", Category: "books", Description: "Paperback", Price: 12.50, Stock: 3},
	}
}

func TestGet_MissReturnsFalse(t *testing.T) {
	c := New()
	_, ok := c.Get("k")
	require.False(t, ok)
}

func TestSetAndGet_ReturnsCopy(t *testing.T) {
	c := New()
	c.Set("k", sampleList())

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, sampleList(), got)

	// mutating the returned slice must not leak back into the cache
	got[0].Name = "changed"
	again, _ := c.Get("k")
	assert.Equal(t, "Laptop", again[0].Name)
}

func TestInvalidate_DropsEntry(t *testing.T) {
	c := New()
	c.Set("k", sampleList())
	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestInvalidateAll(t *testing.T) {
	c := New()
	c.Set("a", sampleList())
	c.Set("b", nil)
	c.InvalidateAll()

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestMarkStale(t *testing.T) {
	c := New()
	c.Set("k", sampleList())
	require.False(t, c.IsStale("k"))

	c.MarkStale("k")
	assert.True(t, c.IsStale("k"))

	// a fresh Set clears staleness
	c.Set("k", sampleList())
	assert.False(t, c.IsStale("k"))

	// unknown keys are never stale
	assert.False(t, c.IsStale("absent"))
}

func removeID(id int64) func([]models.Product) []models.Product {
	return func(items []models.Product) []models.Product {
		out := items[:0]
		for _, p := range items {
			if p.ID != id {
				out = append(out, p)
			}
		}
		return out
	}
}

func TestOptimisticUpdate_MissingKey(t *testing.T) {
	c := New()
	_, ok := c.OptimisticUpdate("k", removeID(1))
	require.False(t, ok)
}

func TestOptimisticUpdate_AppliesTransformImmediately(t *testing.T) {
	c := New()
	c.Set("k", sampleList())

	_, ok := c.OptimisticUpdate("k", removeID(2))
	require.True(t, ok)

	got, _ := c.Get("k")
	require.Len(t, got, 2)
	for _, p := range got {
		assert.NotEqual(t, int64(2), p.ID)
	}
}

func TestOptimisticUpdate_CommitKeepsChangeAndMarksStale(t *testing.T) {
	c := New()
	c.Set("k", sampleList())

	u, ok := c.OptimisticUpdate("k", removeID(1))
	require.True(t, ok)
	u.Commit()

	got, _ := c.Get("k")
	require.Len(t, got, 2)
	assert.True(t, c.IsStale("k"))
}

func TestOptimisticUpdate_RollbackRestoresSnapshot(t *testing.T) {
	c := New()
	c.Set("k", sampleList())

	u, ok := c.OptimisticUpdate("k", removeID(1))
	require.True(t, ok)
	u.Rollback()

	got, _ := c.Get("k")
	require.ElementsMatch(t, sampleList(), got)
	// the failed mutation still forces a refresh
	assert.True(t, c.IsStale("k"))
}

func TestUpdate_SecondFinishIsNoop(t *testing.T) {
	c := New()
	c.Set("k", sampleList())

	u, _ := c.OptimisticUpdate("k", removeID(1))
	u.Commit()
	u.Rollback() // must not resurrect the removed item

	got, _ := c.Get("k")
	require.Len(t, got, 2)
}
