// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/staranto/elcachego/internal/config"
	"github.com/staranto/elcachego/internal/meta"
)

// GetCommandAction is the action handler for the "get" subcommand. It
// prints the live value of a key as JSON, optionally drilled into with
// --query. Expired keys print nothing; the side-effect revoke is persisted
// by the close.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "get") {
		return nil
	}

	config.Config.Namespace = "get"

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}
	defer CloseCache(c)

	key := cmd.Args().First()

	value, expiry, ok := c.GetWithExpiry(key)
	if !ok {
		log.Debugf("key %q absent or expired", key)
		return nil
	}

	doc, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to render value: %w", err)
	}

	if query := cmd.String("query"); query != "" {
		result := gjson.GetBytes(doc, query)
		if !result.Exists() {
			log.Debugf("query %q matched nothing", query)
			return nil
		}
		fmt.Println(result.String())
		return nil
	}

	if cmd.Bool("with-expiry") {
		fmt.Printf("%s\t%s\n", doc, expiry.Format(time.RFC3339))
		return nil
	}

	fmt.Println(string(doc))
	return nil
}

// GetCommandBuilder constructs the cli.Command for "get", wiring metadata,
// flags, and action/validator handlers.
func GetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "read a key",
		UsageText: `elcache get KEY [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "gjson path to extract from the value",
			},
			&cli.BoolFlag{
				Name:  "with-expiry",
				Usage: "append the absolute expiry to the output",
				Value: false,
			},
			tldrFlag,
		}, NewGlobalFlags("get")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := GetCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return GetCommandAction(ctx, cmd)
		},
	}
}

// GetCommandValidator performs validation for "get" and delegates to
// GlobalFlagsValidator.
func GetCommandValidator(ctx context.Context, cmd *cli.Command) error {
	if err := RequireArgs(cmd, "KEY"); err != nil {
		return err
	}
	return GlobalFlagsValidator(ctx, cmd)
}
