// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders command result sets as JSON, YAML, or a styled
// text table.
package output
