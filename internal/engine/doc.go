// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package engine owns the persistence core of elcache: the in-memory store
// bound to one flat file per context, the framed on-disk encoding, the
// hash-based dirty tracking that skips redundant writes, and the merge
// performed at close against concurrent external modifications of the file.
package engine
