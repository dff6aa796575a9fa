// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"sync"

	"github.com/apex/log"
)

// The registry holds at most one live handle per context per process,
// behind an explicit init/release lifecycle. There is deliberately no
// hidden singleton: callers that want shared handles go through Init and
// own the matching Release.
var (
	registryMu sync.Mutex
	registry   = map[string]*Cache{}
)

// Init returns the process-wide handle for cfg's context, opening it on
// first use. A second Init for a live context returns the existing handle
// unchanged; cfg is only consulted when a new handle is opened.
func Init(cfg Config) (*Cache, error) {
	cfg = cfg.resolve()

	registryMu.Lock()
	defer registryMu.Unlock()

	if c, ok := registry[cfg.Context]; ok {
		return c, nil
	}

	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	registry[cfg.Context] = c

	log.Debugf("registered cache handle for context %q", cfg.Context)
	return c, nil
}

// Release closes and drops the registered handle for a context. Unknown
// contexts are a no-op.
func Release(context string) error {
	registryMu.Lock()
	c, ok := registry[context]
	delete(registry, context)
	registryMu.Unlock()

	if !ok {
		return nil
	}
	return c.Close()
}

// ReleaseAll closes every registered handle, returning the first close
// error after attempting them all.
func ReleaseAll() error {
	registryMu.Lock()
	handles := make(map[string]*Cache, len(registry))
	for ctx, c := range registry {
		handles[ctx] = c
	}
	registry = map[string]*Cache{}
	registryMu.Unlock()

	var firstErr error
	for ctx, c := range handles {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		} else if err != nil {
			log.WithError(err).Warnf("failed to close cache context %q", ctx)
		}
	}
	return firstErr
}
