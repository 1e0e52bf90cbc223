// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package quote implements the quote command.
package quote

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/subprocess"
	"github.com/urfave/cli/v3"
)

// QuoteCmd prints its arguments quoted for a POSIX shell.
var QuoteCmd = &cli.Command{
	Name:      "quote",
	Usage:     "Quote tokens for a POSIX shell",
	ArgsUsage: "TOKEN...",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintln(cmd.Root().Writer, subprocess.Join(cmd.Args().Slice()...))
		return err //nolint:wrapcheck
	},
}
