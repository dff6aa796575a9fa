// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/elcachego/internal/cache"
	"github.com/staranto/elcachego/internal/meta"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr elcache <subcmd>` and returns true so the caller can exit
// early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "elcache", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// OpenCache builds a cache handle from the global flags. Callers own the
// matching CloseCache on every exit path; that is what flushes and
// reconciles the file.
func OpenCache(cmd *cli.Command) (*cache.Cache, error) {
	return cache.New(cache.Config{
		Path:      cmd.String("path"),
		Context:   cmd.String("context"),
		TTL:       time.Duration(cmd.Int("ttl")) * time.Second,
		MaxBuffer: int(cmd.Int("max-buffer")),
	})
}

// CloseCache closes a handle, logging rather than propagating the error.
// CLI exits must not fail on a close-time flush problem after the command
// itself succeeded.
func CloseCache(c *cache.Cache) {
	if err := c.Close(); err != nil {
		log.WithError(err).Warnf("failed to close cache %s", c.Path())
	}
}

// TTLFromFlag returns the --ttl value when explicitly set, so actions can
// distinguish "use the handle default" from an override.
func TTLFromFlag(cmd *cli.Command) (time.Duration, bool) {
	if cmd.IsSet("ttl") {
		return time.Duration(cmd.Int("ttl")) * time.Second, true
	}
	return 0, false
}

// ParseValue interprets a CLI value argument as a JSON literal, falling
// back to the plain string when it does not parse. `42` is a number,
// `"42"` and `forty-two` are strings, `[1,2]` is a sequence.
func ParseValue(arg string) any {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return arg
	}
	return v
}
