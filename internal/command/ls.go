// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/staranto/elcachego/internal/config"
	"github.com/staranto/elcachego/internal/meta"
	"github.com/staranto/elcachego/internal/output"
)

// LsCommandAction is the action handler for the "ls" subcommand. It lists
// every stored entry, expired ones included, with its expiry and encoded
// size, and a footer describing the backing file.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "ls") {
		return nil
	}

	config.Config.Namespace = "ls"

	c, err := OpenCache(cmd)
	if err != nil {
		return err
	}
	defer CloseCache(c)

	now := time.Now().Unix()

	var dataset []map[string]interface{}
	for key, entry := range c.Entries() {
		encoded, _ := json.Marshal(entry.Value)
		expiry := time.Unix(entry.Expiry, 0)

		state := "live"
		if entry.Expiry < now {
			state = "expired"
		}

		dataset = append(dataset, map[string]interface{}{
			"key":    key,
			"value":  entry.Value,
			"expiry": expiry.Format(time.RFC3339),
			"in":     humanize.Time(expiry),
			"size":   humanize.Bytes(uint64(len(encoded))),
			"state":  state,
		})
	}

	sort.Slice(dataset, func(i, j int) bool {
		return dataset[i]["key"].(string) < dataset[j]["key"].(string)
	})

	cols := []string{"key", "value", "expiry", "in", "size", "state"}
	output.Spit(dataset, cols, cmd, os.Stdout)

	if cmd.String("output") == "text" {
		if info, serr := os.Stat(c.Path()); serr == nil {
			fmt.Printf("%d entries, %s in %s\n",
				c.Len(), humanize.Bytes(uint64(info.Size())), c.Path())
		}
	}

	return nil
}

// LsCommandBuilder constructs the cli.Command for "ls".
func LsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list cached entries",
		UsageText: `elcache ls [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags("ls")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, cmd); err != nil {
				return err
			}
			return LsCommandAction(ctx, cmd)
		},
	}
}
