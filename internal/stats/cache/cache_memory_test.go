package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accidentstats/internal/stats/models"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		c := NewMemory(time.Minute)
		var got []models.YearCount
		ok, err := c.Get(ctx, "year-count", &got)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("hit returns a copy of the stored value", func(t *testing.T) {
		c := NewMemory(time.Minute)
		want := []models.YearCount{{Year: 2010, Count: 3}}
		require.NoError(t, c.Set(ctx, "year-count", want))

		var got []models.YearCount
		ok, err := c.Get(ctx, "year-count", &got)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want, got)

		got[0].Count = 99
		var again []models.YearCount
		_, err = c.Get(ctx, "year-count", &again)
		require.NoError(t, err)
		assert.Equal(t, int64(3), again[0].Count)
	})

	t.Run("invalidate drops every entry", func(t *testing.T) {
		c := NewMemory(time.Minute)
		require.NoError(t, c.Set(ctx, "a", 1))
		require.NoError(t, c.Set(ctx, "b", 2))
		require.NoError(t, c.Invalidate(ctx))

		var v int
		ok, err := c.Get(ctx, "a", &v)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("entries expire after the ttl", func(t *testing.T) {
		c := NewMemory(10 * time.Millisecond)
		require.NoError(t, c.Set(ctx, "a", 1))
		time.Sleep(30 * time.Millisecond)

		var v int
		ok, err := c.Get(ctx, "a", &v)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
