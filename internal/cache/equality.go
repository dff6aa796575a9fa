// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"reflect"
	"strconv"
)

// Equal compares two cached values in one of two explicit modes.
//
// Strict mode requires exact type and value: reflect.DeepEqual, no
// coercion of any kind. float64(1) and int(1) are not strictly equal.
//
// Loose mode applies this coercion table, recursively for composites:
//
//	number  vs number  -> compared as float64
//	number  vs string  -> string parsed as a number; unparseable is unequal
//	bool    vs number  -> true is 1, false is 0
//	bool    vs bool    -> ==
//	string  vs string  -> ==
//	nil     vs nil     -> equal; nil never equals a non-nil value
//	seq     vs seq     -> same length, elements loosely equal in order
//	mapping vs mapping -> same keys, values loosely equal
//
// Pairs outside the table (bool vs string, sequence vs mapping, ...) are
// unequal. Values decoded from a cache file are in the JSON domain
// (float64, string, bool, nil, []any, map[string]any); the numeric rows
// also accept the native Go integer widths so freshly Set values compare
// sanely before a round trip.
func Equal(a, b any, strict bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if strict {
		return reflect.DeepEqual(a, b)
	}
	return looseEqual(a, b)
}

func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)

	switch {
	case aNum && bNum:
		return af == bf
	case aNum || bNum:
		// One side numeric: the other may be a numeric string or a bool.
		other := a
		num := bf
		if aNum {
			other = b
			num = af
		}
		switch v := other.(type) {
		case string:
			parsed, err := strconv.ParseFloat(v, 64)
			return err == nil && parsed == num
		case bool:
			coerced := 0.0
			if v {
				coerced = 1.0
			}
			return coerced == num
		}
		return false
	}

	switch av := a.(type) {
	case string:
		bs, ok := b.(string)
		return ok && av == bs
	case bool:
		bb, ok := b.(bool)
		return ok && av == bb
	case []any:
		bseq, ok := b.([]any)
		if !ok || len(av) != len(bseq) {
			return false
		}
		for i := range av {
			if !looseEqual(av[i], bseq[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bmap, ok := b.(map[string]any)
		if !ok || len(av) != len(bmap) {
			return false
		}
		for k, v := range av {
			bv, present := bmap[k]
			if !present || !looseEqual(v, bv) {
				return false
			}
		}
		return true
	}

	return false
}

// toFloat widens any native numeric type to float64. Bools and strings are
// not numbers here; their coercion is handled a level up so that
// bool-vs-bool and string-vs-string stay exact.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
