// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache is the access layer over the persistence engine. It applies
// default-TTL policy, expiry-aware reads, the revoke-routing rules for nil
// values and non-positive TTLs, and the check/push conveniences. It keeps
// no durable state of its own; everything flows down into exactly one
// engine per context.
package cache
