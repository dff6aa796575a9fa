// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/elcachego/internal/cache"
	"github.com/staranto/elcachego/internal/config"
)

func init() {
	cfg, _ = config.Load()
}

var (
	cfg config.Type

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// NewGlobalFlags builds the flag set shared by every subcommand. Each flag
// resolves, in order: the explicit flag, its env variable, the namespaced
// config key, the global config key, and finally the hard default.
func NewGlobalFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Usage:   "directory holding the cache file",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ELCACHE_PATH"),
				yaml.YAML(ns+"."+"path", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("cache.path", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.StringFlag{
			Name:    "context",
			Aliases: []string{"x"},
			Usage:   "cache namespace, selecting the backing file",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ELCACHE_CONTEXT"),
				yaml.YAML(ns+"."+"context", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("cache.context", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "default",
		},
		&cli.IntFlag{
			Name:  "ttl",
			Usage: "default time-to-live in seconds",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ELCACHE_TTL"),
				yaml.YAML("cache.ttl", altsrc.StringSourcer(cfg.Source)),
			),
			Value: 3600,
		},
		&cli.IntFlag{
			Name:  "max-buffer",
			Usage: "encoded payload budget in KiB",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("cache.max_buffer", altsrc.StringSourcer(cfg.Source)),
			),
			Value: cache.DefaultMaxBuffer,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// pathHas checks if the given executable exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
