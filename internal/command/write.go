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

// WriteCommandAction is the action handler for the "write" subcommand.
// Without --force this is a no-op for a clean store; its main use is
// recreating a hard-purged file or forcing a flush after external edits.
func WriteCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "write") {
		return nil
	}

	config.Config.Namespace = "write"

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}
	defer CloseCache(c)

	return c.Write(cmd.Bool("force"))
}

// WriteCommandBuilder constructs the cli.Command for "write".
func WriteCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "write",
		Usage:     "flush the store to its file",
		UsageText: `elcache write [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "write even when the dirty check says the file is current",
				Value:   false,
			},
			tldrFlag,
		}, NewGlobalFlags("write")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, cmd); err != nil {
				return err
			}
			return WriteCommandAction(ctx, cmd)
		},
	}
}
