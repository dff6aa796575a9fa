// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualLoose(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "equal floats", a: 1.5, b: 1.5, want: true},
		{name: "int vs float", a: 1, b: float64(1), want: true},
		{name: "int64 vs float", a: int64(7), b: float64(7), want: true},
		{name: "unequal numbers", a: 1, b: 2, want: false},
		{name: "numeric string vs number", a: "42", b: float64(42), want: true},
		{name: "numeric string vs unequal number", a: "42", b: float64(41), want: false},
		{name: "non-numeric string vs number", a: "forty-two", b: float64(42), want: false},
		{name: "true vs one", a: true, b: 1, want: true},
		{name: "false vs zero", a: false, b: 0, want: true},
		{name: "true vs two", a: true, b: 2, want: false},
		{name: "bool vs bool", a: true, b: true, want: true},
		{name: "bool vs string", a: true, b: "true", want: false},
		{name: "string vs string", a: "a", b: "a", want: true},
		{name: "nil vs nil", a: nil, b: nil, want: true},
		{name: "nil vs zero", a: nil, b: 0, want: false},
		{name: "nil vs empty string", a: nil, b: "", want: false},
		{name: "sequences elementwise", a: []any{1, "2"}, b: []any{float64(1), float64(2)}, want: true},
		{name: "sequences length mismatch", a: []any{1}, b: []any{1, 2}, want: false},
		{name: "sequence vs mapping", a: []any{1}, b: map[string]any{"0": 1}, want: false},
		{name: "mappings recurse", a: map[string]any{"n": 1}, b: map[string]any{"n": float64(1)}, want: true},
		{name: "mappings key mismatch", a: map[string]any{"n": 1}, b: map[string]any{"m": 1}, want: false},
		{
			name: "nested composite",
			a:    map[string]any{"seq": []any{1, map[string]any{"b": true}}},
			b:    map[string]any{"seq": []any{float64(1), map[string]any{"b": 1}}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b, false))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a, false), "loose equality must be symmetric")
		})
	}
}

func TestEqualStrict(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "same type and value", a: float64(1), b: float64(1), want: true},
		{name: "int vs float64", a: 1, b: float64(1), want: false},
		{name: "numeric string vs number", a: "42", b: float64(42), want: false},
		{name: "bool vs one", a: true, b: 1, want: false},
		{name: "deep equal composite", a: []any{"a", float64(1)}, b: []any{"a", float64(1)}, want: true},
		{name: "composite type drift", a: []any{1}, b: []any{float64(1)}, want: false},
		{name: "nil vs nil", a: nil, b: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b, true))
		})
	}
}
