// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

// RequireArgs verifies the command got exactly the named positional args.
func RequireArgs(cmd *cli.Command, names ...string) error {
	if cmd.Args().Len() < len(names) {
		return fmt.Errorf("missing argument(s): %v", names[cmd.Args().Len():])
	}
	if cmd.Args().Len() > len(names) {
		return fmt.Errorf("unexpected extra arguments: %v", cmd.Args().Slice()[len(names):])
	}
	return nil
}
