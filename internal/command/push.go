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

// PushCommandAction is the action handler for the "push" subcommand. By
// default the value is appended to the key's sequence unless an equal
// element is already present; --index inserts unconditionally at a
// position. Either way the entry's expiry is refreshed.
func PushCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "push") {
		return nil
	}

	config.Config.Namespace = "push"

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}
	defer CloseCache(c)

	key := cmd.Args().Get(0)
	value := ParseValue(cmd.Args().Get(1))

	ttl, ttlSet := TTLFromFlag(cmd)

	switch {
	case cmd.IsSet("index") && ttlSet:
		c.PushAt(key, int(cmd.Int("index")), value, ttl)
	case cmd.IsSet("index"):
		c.PushAt(key, int(cmd.Int("index")), value)
	case ttlSet:
		c.Push(key, value, ttl)
	default:
		c.Push(key, value)
	}

	return nil
}

// PushCommandBuilder constructs the cli.Command for "push".
func PushCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "append a value to a key's sequence",
		UsageText: `elcache push KEY VALUE [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:        "index",
				Aliases:     []string{"i"},
				Usage:       "insert at this position instead of appending",
				HideDefault: true,
			},
			tldrFlag,
		}, NewGlobalFlags("push")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := PushCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return PushCommandAction(ctx, cmd)
		},
	}
}

// PushCommandValidator performs validation for "push".
func PushCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, "KEY", "VALUE"); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}
