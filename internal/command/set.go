// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/elcachego/internal/config"
	"github.com/staranto/elcachego/internal/meta"
)

// SetCommandAction is the action handler for the "set" subcommand. The
// value argument is parsed as a JSON literal with a plain-string fallback.
// A literal `null` routes to a revoke, as does an explicit --ttl of zero
// or less.
func SetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "set") {
		return nil
	}

	config.Config.Namespace = "set"

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}
	defer CloseCache(c)

	key := cmd.Args().Get(0)
	value := ParseValue(cmd.Args().Get(1))

	if ttl, set := TTLFromFlag(cmd); set {
		c.Set(key, value, ttl)
	} else {
		c.Set(key, value)
	}

	return nil
}

// SetCommandBuilder constructs the cli.Command for "set", wiring metadata,
// flags, and action/validator handlers.
func SetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "store a key",
		UsageText: `elcache set KEY VALUE [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags("set")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := SetCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return SetCommandAction(ctx, cmd)
		},
	}
}

// SetCommandValidator performs validation for "set" and delegates to
// GlobalFlagsValidator.
func SetCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, "KEY", "VALUE"); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}
