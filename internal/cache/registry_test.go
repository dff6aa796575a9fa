// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitReturnsSameHandle(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = ReleaseAll() })

	first, err := Init(Config{Path: dir, Context: "reg"})
	require.NoError(t, err)

	second, err := Init(Config{Path: dir, Context: "reg"})
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestInitSeparatesContexts(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = ReleaseAll() })

	a, err := Init(Config{Path: dir, Context: "one"})
	require.NoError(t, err)
	b, err := Init(Config{Path: dir, Context: "two"})
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotEqual(t, a.Path(), b.Path())
}

func TestReleaseClosesAndForgets(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = ReleaseAll() })

	c, err := Init(Config{Path: dir, Context: "rel"})
	require.NoError(t, err)
	c.Set("k", "v", time.Hour)

	require.NoError(t, Release("rel"))

	// Release flushed the handle; a fresh Init sees the persisted entry
	// through a new instance.
	fresh, err := Init(Config{Path: dir, Context: "rel"})
	require.NoError(t, err)
	assert.NotSame(t, c, fresh)

	got, ok := fresh.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestReleaseUnknownContext(t *testing.T) {
	assert.NoError(t, Release("never-initialized"))
}
