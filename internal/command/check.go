// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/elcachego/internal/config"
	"github.com/staranto/elcachego/internal/meta"
)

// CheckCommandAction is the action handler for the "check" subcommand. It
// prints "true" or "false" and exits 0 either way; scripting callers that
// want a failing exit code can pair it with grep.
func CheckCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "check") {
		return nil
	}

	config.Config.Namespace = "check"

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}
	defer CloseCache(c)

	key := cmd.Args().Get(0)
	want := ParseValue(cmd.Args().Get(1))

	fmt.Println(c.Check(key, want, cmd.Bool("strict")))
	return nil
}

// CheckCommandBuilder constructs the cli.Command for "check".
func CheckCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "compare a key against a value",
		UsageText: `elcache check KEY VALUE [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "require exact type and value, no coercion",
				Value: false,
			},
			tldrFlag,
		}, NewGlobalFlags("check")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := CheckCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return CheckCommandAction(ctx, cmd)
		},
	}
}

// CheckCommandValidator performs validation for "check".
func CheckCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, "KEY", "VALUE"); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}
