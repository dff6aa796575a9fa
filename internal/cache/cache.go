// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"os"
	"strconv"
	"time"

	"github.com/apex/log"

	"github.com/staranto/elcachego/internal/config"
	"github.com/staranto/elcachego/internal/engine"
)

// Defaults applied when neither the caller nor elcache.yaml supplies a
// value.
const (
	DefaultTTL       = 3600 * time.Second
	DefaultMaxBuffer = 4096 // KiB
)

// Config is the construction-time configuration for one cache handle.
// Zero values are filled from the cache.* keys of elcache.yaml, then from
// the hard defaults.
type Config struct {
	// Path is the directory holding the cache file.
	Path string
	// Context is the namespace selecting which file to bind.
	Context string
	// TTL is the default time-to-live applied by Set when none is given.
	TTL time.Duration
	// MaxBuffer caps the encoded payload size, in KiB.
	MaxBuffer int
}

// resolve fills unset fields from the config file and hard defaults.
func (c Config) resolve() Config {
	if c.Path == "" {
		c.Path, _ = config.GetString("cache.path", os.TempDir())
	}
	if c.Context == "" {
		c.Context, _ = config.GetString("cache.context", engine.DefaultContext)
	}
	if c.TTL <= 0 {
		seconds, _ := config.GetInt("cache.ttl", int(DefaultTTL/time.Second))
		c.TTL = time.Duration(seconds) * time.Second
	}
	if c.MaxBuffer == 0 {
		c.MaxBuffer, _ = config.GetInt("cache.max_buffer", DefaultMaxBuffer)
	}
	return c
}

// Cache is one context's handle. It owns its engine for its lifetime and
// must be closed on every exit path so the final flush and reconciliation
// run; callers typically `defer c.Close()` right after New.
type Cache struct {
	eng *engine.Engine
	ttl time.Duration
}

// New opens a cache handle for cfg's context. The registry in this package
// is the usual front door; New itself hands out an unregistered instance.
func New(cfg Config) (*Cache, error) {
	cfg = cfg.resolve()

	eng, err := engine.Open(cfg.Path, cfg.Context, cfg.MaxBuffer)
	if err != nil {
		return nil, err
	}

	return &Cache{eng: eng, ttl: cfg.TTL}, nil
}

// Get returns the live value for key. Present-but-expired entries are
// treated as absent and revoked as a side effect. An entry expiring
// exactly now is still live.
func (c *Cache) Get(key string) (any, bool) {
	value, _, ok := c.GetWithExpiry(key)
	return value, ok
}

// GetWithExpiry is Get paired with the entry's absolute expiry. Absent and
// expired keys return the zero time.
func (c *Cache) GetWithExpiry(key string) (any, time.Time, bool) {
	entry, ok := c.eng.Get(key)
	if !ok {
		return nil, time.Time{}, false
	}
	if entry.Expiry < time.Now().Unix() {
		log.Debugf("key %q expired, revoking", key)
		c.eng.Revoke(key)
		return nil, time.Time{}, false
	}
	return entry.Value, time.Unix(entry.Expiry, 0), true
}

// Set stores value under key for ttl (the handle default when omitted).
// A nil value or a non-positive ttl routes to Revoke instead: absence is
// modeled by the key not existing, never by a nil-valued entry. Set only
// mutates memory and cannot fail.
func (c *Cache) Set(key string, value any, ttl ...time.Duration) {
	d := c.ttl
	if len(ttl) > 0 {
		d = ttl[0]
	}

	if value == nil || d <= 0 {
		c.eng.Revoke(key)
		return
	}

	c.eng.Set(key, value, time.Now().Add(d).Unix())
}

// Revoke removes key. Absent keys are a no-op.
func (c *Cache) Revoke(key string) {
	c.eng.Revoke(key)
}

// Check compares the live value of key against want. Strict mode demands
// exact type and value; loose mode applies the coercion table documented
// on Equal. Absent or expired keys never match, except that a nil want
// loosely matches an absent key (no value is loosely equal to no value).
func (c *Cache) Check(key string, want any, strict bool) bool {
	got, ok := c.Get(key)
	if !ok {
		return !strict && want == nil
	}
	return Equal(got, want, strict)
}

// Push appends value to the collection stored at key, unless an element
// loosely equal to it is already present. Sequences grow at the end;
// mappings keep their existing pairs and take the value under the next
// unused integer-string key. An absent key, or one holding a scalar,
// resets to an empty sequence first. Either way the whole collection is
// re-set with a fresh expiry from ttl or the handle default; the old
// expiry is not carried over.
func (c *Cache) Push(key string, value any, ttl ...time.Duration) {
	seq, m := c.collectionAt(key)

	if m != nil {
		for _, existing := range m {
			if Equal(existing, value, false) {
				c.Set(key, m, ttl...)
				return
			}
		}
		m[strconv.Itoa(nextIndex(m))] = value
		c.Set(key, m, ttl...)
		return
	}

	for _, existing := range seq {
		if Equal(existing, value, false) {
			c.Set(key, seq, ttl...)
			return
		}
	}
	c.Set(key, append(seq, value), ttl...)
}

// PushAt inserts value into the collection stored at key at the given
// index, clamped to zero from below. Sequences also clamp from above and
// shift; mappings assign under the index's string key, overwriting any
// pair already there. Unlike Push it inserts unconditionally. The expiry
// is refreshed the same way.
func (c *Cache) PushAt(key string, index int, value any, ttl ...time.Duration) {
	seq, m := c.collectionAt(key)
	if index < 0 {
		index = 0
	}

	if m != nil {
		m[strconv.Itoa(index)] = value
		c.Set(key, m, ttl...)
		return
	}

	if index > len(seq) {
		index = len(seq)
	}
	seq = append(seq, nil)
	copy(seq[index+1:], seq[index:])
	seq[index] = value

	c.Set(key, seq, ttl...)
}

// collectionAt reads the live value of key as a push target. Exactly one
// return is non-nil: the sequence when the key holds one (or holds
// nothing pushable, in which case it is reset to empty), the mapping when
// the key holds a mapping.
func (c *Cache) collectionAt(key string) ([]any, map[string]any) {
	current, ok := c.Get(key)
	if !ok {
		return []any{}, nil
	}
	switch v := current.(type) {
	case []any:
		return v, nil
	case map[string]any:
		return nil, v
	}
	log.Debugf("key %q holds a scalar, resetting for push", key)
	return []any{}, nil
}

// nextIndex returns one past the highest integer-string key in m, so a
// pushed value never overwrites an existing pair.
func nextIndex(m map[string]any) int {
	next := 0
	for k := range m {
		if n, err := strconv.Atoi(k); err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}

// PurgeExpired drops expired entries, optionally flushing afterward.
func (c *Cache) PurgeExpired(thenWrite bool) error {
	return c.eng.PurgeExpired(time.Now().Unix(), thenWrite)
}

// PurgeAll empties the store; hard additionally removes the backing file.
func (c *Cache) PurgeAll(hard bool) error {
	return c.eng.PurgeAll(hard)
}

// Write flushes the store to disk, subject to the engine's dirty check.
func (c *Cache) Write(force bool) error {
	return c.eng.Write(force)
}

// Close flushes and reconciles the engine. See engine.Engine.Close for the
// merge semantics against concurrent writers.
func (c *Cache) Close() error {
	return c.eng.Close()
}

// Path returns the backing file path.
func (c *Cache) Path() string {
	return c.eng.Path()
}

// Context returns the namespace this handle is bound to.
func (c *Cache) Context() string {
	return c.eng.Context()
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	return c.eng.Len()
}

// Entries returns a snapshot of the raw store, expired entries included,
// for inspection surfaces like the ls command.
func (c *Cache) Entries() map[string]engine.Entry {
	out := make(map[string]engine.Entry, c.eng.Len())
	for _, key := range c.eng.Keys() {
		if entry, ok := c.eng.Get(key); ok {
			out[key] = entry
		}
	}
	return out
}
