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

// RevokeCommandAction is the action handler for the "revoke" subcommand.
// Revoking an absent key succeeds quietly.
func RevokeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "revoke") {
		return nil
	}

	config.Config.Namespace = "revoke"

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}
	defer CloseCache(c)

	c.Revoke(cmd.Args().First())
	return nil
}

// RevokeCommandBuilder constructs the cli.Command for "revoke".
func RevokeCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "revoke",
		Usage:     "remove a key",
		UsageText: `elcache revoke KEY [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags("revoke")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := RevokeCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return RevokeCommandAction(ctx, cmd)
		},
	}
}

// RevokeCommandValidator performs validation for "revoke".
func RevokeCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, "KEY"); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}
