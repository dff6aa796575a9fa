// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// elcachego is the main package for the elcache command line tool: a
// file-persisted key-value cache shared between short-lived process
// invocations. It wires the CLI, delegates to internal packages, and
// serves as the entry point.
package main
