// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(Config{Path: t.TempDir(), Context: "test"})
	require.NoError(t, err)
	return c
}

func TestGetAbsentKey(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.Get("never-set")
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", "v", time.Hour)
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestGetWithExpiry(t *testing.T) {
	c := newTestCache(t)

	before := time.Now()
	c.Set("k", "v", time.Hour)

	got, expiry, ok := c.GetWithExpiry("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
	assert.WithinDuration(t, before.Add(time.Hour), expiry, 2*time.Second)

	_, expiry, ok = c.GetWithExpiry("absent")
	assert.False(t, ok)
	assert.True(t, expiry.IsZero())
}

func TestGetExpiredRevokesSideEffect(t *testing.T) {
	c := newTestCache(t)

	// Plant an already-expired entry directly in the engine.
	c.eng.Set("k", "v", time.Now().Unix()-10)

	_, ok := c.Get("k")
	assert.False(t, ok)

	// The expired entry must be gone from the store, not just hidden.
	_, ok = c.eng.Get("k")
	assert.False(t, ok)
}

func TestSetRevokeRouting(t *testing.T) {
	tests := []struct {
		name string
		set  func(c *Cache)
	}{
		{name: "nil value", set: func(c *Cache) { c.Set("k", nil, time.Hour) }},
		{name: "zero ttl", set: func(c *Cache) { c.Set("k", "v", 0) }},
		{name: "negative ttl", set: func(c *Cache) { c.Set("k", "v", -time.Second) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCache(t)
			c.Set("k", "old", time.Hour)

			tt.set(c)

			_, ok := c.Get("k")
			assert.False(t, ok)
		})
	}
}

func TestSetDefaultTTL(t *testing.T) {
	c, err := New(Config{Path: t.TempDir(), Context: "ttl", TTL: 2 * time.Hour})
	require.NoError(t, err)

	before := time.Now()
	c.Set("k", "v")

	_, expiry, ok := c.GetWithExpiry("k")
	assert.True(t, ok)
	assert.WithinDuration(t, before.Add(2*time.Hour), expiry, 2*time.Second)
}

func TestCheck(t *testing.T) {
	c := newTestCache(t)
	c.Set("n", float64(1), time.Hour)
	c.Set("s", "hello", time.Hour)

	assert.True(t, c.Check("n", 1, false), "loose: int 1 matches float64 1")
	assert.False(t, c.Check("n", 1, true), "strict: int 1 does not match float64 1")
	assert.True(t, c.Check("n", float64(1), true))
	assert.True(t, c.Check("s", "hello", true))
	assert.False(t, c.Check("s", "other", false))
	assert.False(t, c.Check("absent", "anything", false))
	assert.True(t, c.Check("absent", nil, false), "loose: absent matches nil")
	assert.False(t, c.Check("absent", nil, true))
}

func TestPushAppends(t *testing.T) {
	c := newTestCache(t)

	c.Push("seq", "a")
	c.Push("seq", "b")

	got, ok := c.Get("seq")
	assert.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestPushSkipsDuplicates(t *testing.T) {
	c := newTestCache(t)

	c.Push("seq", "a")
	c.Push("seq", "a")
	c.Push("seq", float64(1))
	c.Push("seq", 1) // loosely equal to float64(1)

	got, _ := c.Get("seq")
	assert.Equal(t, []any{"a", float64(1)}, got)
}

func TestPushResetsScalar(t *testing.T) {
	c := newTestCache(t)

	c.Set("k", "scalar", time.Hour)
	c.Push("k", "a")

	got, _ := c.Get("k")
	assert.Equal(t, []any{"a"}, got)
}

func TestPushOntoMappingKeepsPairs(t *testing.T) {
	c := newTestCache(t)

	c.Set("m", map[string]any{"a": float64(1)}, time.Hour)
	c.Push("m", "x")

	got, ok := c.Get("m")
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"a": float64(1), "0": "x"}, got)
}

func TestPushMappingSkipsDuplicateValue(t *testing.T) {
	c := newTestCache(t)

	c.Set("m", map[string]any{"a": float64(1)}, time.Hour)
	c.Push("m", 1) // loosely equal to the value under "a"

	got, _ := c.Get("m")
	assert.Equal(t, map[string]any{"a": float64(1)}, got)
}

func TestPushMappingNextIndexSkipsTaken(t *testing.T) {
	c := newTestCache(t)

	c.Set("m", map[string]any{"0": "a", "3": "b"}, time.Hour)
	c.Push("m", "x")

	got, _ := c.Get("m")
	assert.Equal(t, map[string]any{"0": "a", "3": "b", "4": "x"}, got)
}

func TestPushAtOntoMapping(t *testing.T) {
	c := newTestCache(t)

	c.Set("m", map[string]any{"1": "old", "name": "kept"}, time.Hour)
	c.PushAt("m", 1, "new")

	got, _ := c.Get("m")
	assert.Equal(t, map[string]any{"1": "new", "name": "kept"}, got)
}

func TestPushRefreshesExpiry(t *testing.T) {
	c := newTestCache(t)

	c.Set("seq", []any{"a"}, time.Minute)
	before := time.Now()
	c.Push("seq", "b", time.Hour)

	_, expiry, ok := c.GetWithExpiry("seq")
	assert.True(t, ok)
	assert.WithinDuration(t, before.Add(time.Hour), expiry, 2*time.Second)
}

func TestPushAt(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []any
	}{
		{name: "front", index: 0, want: []any{"x", "a", "b"}},
		{name: "middle", index: 1, want: []any{"a", "x", "b"}},
		{name: "end", index: 2, want: []any{"a", "b", "x"}},
		{name: "clamped high", index: 99, want: []any{"a", "b", "x"}},
		{name: "clamped low", index: -5, want: []any{"x", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCache(t)
			c.Set("seq", []any{"a", "b"}, time.Hour)

			c.PushAt("seq", tt.index, "x")

			got, _ := c.Get("seq")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()

	c, err := New(Config{Path: dir, Context: "rt"})
	require.NoError(t, err)
	c.Set("k", map[string]any{"nested": []any{"v", float64(2)}}, time.Hour)
	require.NoError(t, c.Close())

	reopened, err := New(Config{Path: dir, Context: "rt"})
	require.NoError(t, err)
	got, ok := reopened.Get("k")
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"nested": []any{"v", float64(2)}}, got)
}

func TestPurgeExpiredDelegates(t *testing.T) {
	c := newTestCache(t)

	now := time.Now().Unix()
	c.eng.Set("stale", "v", now-10)
	c.eng.Set("live", "v", now+1000)

	require.NoError(t, c.PurgeExpired(false))

	assert.Equal(t, 1, c.Len())
	_, ok := c.eng.Get("live")
	assert.True(t, ok)
}

func TestEntriesSnapshot(t *testing.T) {
	c := newTestCache(t)

	c.Set("a", "1", time.Hour)
	c.eng.Set("expired", "v", time.Now().Unix()-10)

	entries := c.Entries()
	assert.Len(t, entries, 2, "snapshot includes expired entries")
	assert.Contains(t, entries, "a")
	assert.Contains(t, entries, "expired")
}
