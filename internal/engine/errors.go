// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package engine

import "errors"

var (
	// ErrPathNotWritable is returned by Open when the cache file cannot be
	// created or opened for writing. The caller cannot proceed with that
	// context.
	ErrPathNotWritable = errors.New("cache path not writable")

	// ErrCacheTooLarge is returned by Write when the encoded store exceeds
	// the configured buffer budget. Nothing is written and the in-memory
	// store is untouched; revoke keys or raise the budget and retry.
	ErrCacheTooLarge = errors.New("encoded cache exceeds buffer budget")
)
