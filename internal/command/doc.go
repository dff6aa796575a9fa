// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for elcache. It wires flags,
// validators and actions for the subcommands; every action is a thin
// wrapper over one cache handle that is opened, used and closed within the
// invocation.
package command
