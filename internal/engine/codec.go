// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/apex/log"
)

// On-disk framing. The wrapper makes the file inert if it is ever executed
// as a script by a PHP-ish host, and doubles as a cheap sanity check that a
// file is actually one of ours. The bytes are fixed by the file format and
// must not change.
const (
	framePrefix = "<?php /* "
	frameSuffix = " */ ?>"
)

// Entry is one cached value paired with its absolute expiry, in Unix
// seconds. Value is any JSON-serializable scalar, sequence or string-keyed
// mapping. A nil Value never appears in a store; absence is modeled by the
// key not existing.
type Entry struct {
	Value  any
	Expiry int64
}

// Store is the full key to entry mapping. It is the unit of persistence:
// the whole mapping is encoded and written as one blob.
type Store map[string]Entry

// MarshalJSON encodes the entry as the two-element [value, expiry] tuple
// used by the file format.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Value, e.Expiry})
}

// UnmarshalJSON decodes the [value, expiry] tuple form.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("entry tuple has %d elements, want 2", len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &e.Value); err != nil {
		return err
	}
	var expiry float64
	if err := json.Unmarshal(tuple[1], &expiry); err != nil {
		return err
	}
	e.Expiry = int64(expiry)
	return nil
}

// encodeStore serializes the store to its payload form: a JSON object
// mapping key to [value, expiry]. Go marshals map keys in sorted order, so
// equal stores always produce identical payload bytes.
func encodeStore(s Store) ([]byte, error) {
	if s == nil {
		s = Store{}
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode store: %w", err)
	}
	return payload, nil
}

// decodeStore is the fault-tolerant inverse of encodeStore. Corrupted,
// truncated or foreign payloads yield an empty store, never an error; a
// cache file we cannot read is just "no cache".
func decodeStore(payload []byte) Store {
	s := Store{}
	if len(payload) == 0 {
		return s
	}
	if err := json.Unmarshal(payload, &s); err != nil {
		log.Debugf("discarding undecodable cache payload: %v", err)
		return Store{}
	}
	return s
}

// frame wraps a payload in the on-disk prefix and suffix.
func frame(payload []byte) []byte {
	framed := make([]byte, 0, len(framePrefix)+len(payload)+len(frameSuffix))
	framed = append(framed, framePrefix...)
	framed = append(framed, payload...)
	framed = append(framed, frameSuffix...)
	return framed
}

// unframe strips the wrapper bytes from raw file contents. ok is false when
// the framing is absent or the file is too short to hold it, in which case
// the contents are foreign and the caller should fall back to an empty
// store.
func unframe(raw []byte) (payload []byte, ok bool) {
	if len(raw) < len(framePrefix)+len(frameSuffix) {
		return nil, false
	}
	if !bytes.HasPrefix(raw, []byte(framePrefix)) || !bytes.HasSuffix(raw, []byte(frameSuffix)) {
		return nil, false
	}
	return raw[len(framePrefix) : len(raw)-len(frameSuffix)], true
}

// fingerprint returns the MD5 hex digest of a payload. This is the dirty
// marker: a content fingerprint, not a security hash.
func fingerprint(payload []byte) string {
	h := md5.New()
	_, _ = h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
