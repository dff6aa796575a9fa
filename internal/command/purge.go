// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/elcachego/internal/config"
	"github.com/staranto/elcachego/internal/meta"
)

// PurgeCommandAction is the action handler for the "purge" subcommand.
// The default purges expired entries only; --all clears the whole store,
// and --all --hard additionally removes the backing file.
func PurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "purge") {
		return nil
	}

	config.Config.Namespace = "purge"

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("all") {
		hard := cmd.Bool("hard")
		if err := c.PurgeAll(hard); err != nil {
			_ = c.Close()
			return err
		}
		if hard {
			// The file is gone on purpose; closing would write it right
			// back. This is the one action that skips the close.
			return nil
		}
		return c.Close()
	}

	if err := c.PurgeExpired(cmd.Bool("write")); err != nil {
		_ = c.Close()
		return err
	}
	return c.Close()
}

// PurgeCommandBuilder constructs the cli.Command for "purge".
func PurgeCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "purge",
		Usage:     "drop expired entries, or everything",
		UsageText: `elcache purge [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "clear the whole store, not just expired entries",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "hard",
				Usage: "with --all, remove the backing file outright",
				Value: false,
			},
			&cli.BoolFlag{
				Name:  "write",
				Usage: "flush immediately after purging expired entries",
				Value: false,
			},
			tldrFlag,
		}, NewGlobalFlags("purge")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := PurgeCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return PurgeCommandAction(ctx, cmd)
		},
	}
}

// PurgeCommandValidator performs validation for "purge".
func PurgeCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("hard") && !cmd.Bool("all") {
		return errors.New("--hard requires --all")
	}
	return GlobalFlagsValidator(ctx, cmd)
}
