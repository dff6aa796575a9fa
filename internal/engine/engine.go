// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/apex/log"
)

// DefaultContext is the namespace used when the caller does not name one.
const DefaultContext = "default"

// Engine binds one context's cache file for its lifetime. It is not safe
// for concurrent use from multiple goroutines; callers hold at most one
// logical writer per instance. Concurrency exists across processes only,
// and is handled by the dirty-hash write skip and the merge in Close.
type Engine struct {
	dir     string
	context string
	path    string

	store Store

	// marker is the fingerprint of the last payload known to be on disk.
	// When the current store fingerprints to the same value, Write skips
	// the disk entirely.
	marker string

	// loadedAt is when the file was last read. Close compares it against
	// the file's mtime to detect writes by other processes.
	loadedAt time.Time

	// maxBuffer caps the encoded payload size in KiB. Zero or negative
	// disables the budget.
	maxBuffer int
}

// FileName returns the flat file name for a context. The default (or
// empty) context uses the context-free name.
func FileName(context string) string {
	if context == "" || context == DefaultContext {
		return "elcache.php"
	}
	return "elcache." + context + ".php"
}

// Open binds an engine to dir's file for the given context, creating the
// file with an empty store when it does not exist. The write probe is
// eager: an unwritable path fails here with ErrPathNotWritable, not at the
// first Write. Existing contents are decoded fault-tolerantly; anything
// unreadable loads as an empty store.
func Open(dir, context string, maxBufferKiB int) (*Engine, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	e := &Engine{
		dir:       dir,
		context:   context,
		path:      filepath.Join(dir, FileName(context)),
		store:     Store{},
		maxBuffer: maxBufferKiB,
	}

	info, err := os.Stat(e.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		payload, _ := encodeStore(e.store)
		// One WriteFile call, so a concurrent reader sees either nothing
		// or the full empty-store file.
		if werr := os.WriteFile(e.path, frame(payload), 0o600); werr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPathNotWritable, e.path, werr)
		}
		e.marker = fingerprint(payload)

	case err != nil:
		return nil, fmt.Errorf("%w: %s: %v", ErrPathNotWritable, e.path, err)

	case info.IsDir():
		return nil, fmt.Errorf("%w: %s is a directory", ErrPathNotWritable, e.path)

	default:
		f, werr := os.OpenFile(e.path, os.O_WRONLY, 0)
		if werr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPathNotWritable, e.path, werr)
		}
		_ = f.Close()

		raw, rerr := os.ReadFile(e.path)
		if rerr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrPathNotWritable, e.path, rerr)
		}

		payload, ok := unframe(raw)
		if !ok {
			log.Debugf("cache file %s has foreign framing, loading empty", e.path)
		}
		e.store = decodeStore(payload)
		// Marker is the fingerprint of the raw payload bytes, pre-decode,
		// so an unchanged store round-trips to a skipped write.
		e.marker = fingerprint(payload)
	}

	e.loadedAt = time.Now()
	log.Debugf("opened cache %s with %d entries", e.path, len(e.store))
	return e, nil
}

// Path returns the backing file path.
func (e *Engine) Path() string {
	return e.path
}

// Context returns the namespace this engine is bound to.
func (e *Engine) Context() string {
	return e.context
}

// Len returns the number of in-memory entries, expired ones included.
func (e *Engine) Len() int {
	return len(e.store)
}

// Keys returns all in-memory keys in sorted order.
func (e *Engine) Keys() []string {
	keys := make([]string, 0, len(e.store))
	for k := range e.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get looks up a raw entry. No expiry interpretation happens here; already
// expired entries are returned as-is. Expiry policy belongs to the caller.
func (e *Engine) Get(key string) (Entry, bool) {
	entry, ok := e.store[key]
	return entry, ok
}

// Set unconditionally inserts or overwrites an entry with the given
// absolute expiry in Unix seconds. Revoke-vs-store policy (nil values,
// non-positive TTLs) is the caller's job, not the engine's.
func (e *Engine) Set(key string, value any, expiry int64) {
	e.store[key] = Entry{Value: value, Expiry: expiry}
}

// Revoke removes a key. Absent keys are a no-op, not an error.
func (e *Engine) Revoke(key string) {
	delete(e.store, key)
}

// PurgeExpired drops every entry whose expiry is strictly before now.
// Entries expiring exactly at now are still live. With thenWrite the
// result is flushed via Write(false).
func (e *Engine) PurgeExpired(now int64, thenWrite bool) error {
	for key, entry := range e.store {
		if entry.Expiry < now {
			delete(e.store, key)
		}
	}
	if thenWrite {
		return e.Write(false)
	}
	return nil
}

// PurgeAll empties the store. Soft purge force-writes the empty store so
// the file reflects emptiness but still exists. Hard purge removes the
// backing file instead; the next Write recreates it. Hard-purge removal
// failures are logged and absorbed, matching the close-path contract that
// only Open and Write surface fatal errors.
func (e *Engine) PurgeAll(hard bool) error {
	e.store = Store{}
	if !hard {
		return e.Write(true)
	}

	if err := os.Remove(e.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warnf("failed to remove cache file %s", e.path)
	}
	// Invalidate the marker: the file is gone, so the next Write must hit
	// the disk even when the store hashes the same as before.
	e.marker = ""
	return nil
}

// Write encodes the store and flushes it to the file, unless the payload
// fingerprint matches the marker (and force is unset), in which case the
// disk already agrees with memory and the write is skipped. That hash
// comparison is the only I/O throttle the engine has.
func (e *Engine) Write(force bool) error {
	payload, err := encodeStore(e.store)
	if err != nil {
		return err
	}

	if e.maxBuffer > 0 && len(payload) > e.maxBuffer*1024 {
		return fmt.Errorf("%w: %d bytes encoded, budget %d KiB", ErrCacheTooLarge, len(payload), e.maxBuffer)
	}

	sum := fingerprint(payload)
	if !force && sum == e.marker {
		log.Debugf("cache %s unchanged, skipping write", e.path)
		return nil
	}

	if err := os.WriteFile(e.path, frame(payload), 0o600); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", e.path, err)
	}
	e.marker = sum

	log.Debugf("wrote cache %s (%d entries, %d bytes)", e.path, len(e.store), len(payload))
	return nil
}

// Close flushes the engine, reconciling first against writes from other
// processes. If the file's mtime is newer than our load time, its current
// contents are re-read (fault-tolerantly) and merged under our entries:
// our keys win on collision, the other writer's keys survive everywhere
// else. The merged result is force-written. Reconciliation is last-writer-
// wins per key and can resurrect a key another process revoked after our
// load; that is the documented concurrency model, not a bug.
//
// Read and stat failures during reconciliation mean "nothing to merge" and
// never fail the close.
func (e *Engine) Close() error {
	info, err := os.Stat(e.path)
	if err == nil && info.ModTime().After(e.loadedAt) {
		raw, rerr := os.ReadFile(e.path)
		if rerr != nil {
			log.Debugf("reconciliation read of %s failed: %v", e.path, rerr)
		} else if payload, ok := unframe(raw); ok {
			merged := decodeStore(payload)
			for key, entry := range e.store {
				merged[key] = entry
			}
			log.Debugf("reconciled cache %s: %d entries after merge", e.path, len(merged))
			e.store = merged
		}
		return e.Write(true)
	}

	return e.Write(false)
}
