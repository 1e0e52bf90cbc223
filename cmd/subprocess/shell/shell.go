// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell implements the shell command, which runs a command line through the shell.
package shell

import (
	"context"
	"strings"

	"github.com/matt-FFFFFF/subprocess"
	"github.com/matt-FFFFFF/subprocess/cmd/subprocess/spawnflags"
	"github.com/urfave/cli/v3"
)

// ShellCmd runs a command line verbatim with the shell.
var ShellCmd = &cli.Command{
	Name:  "shell",
	Usage: "Run a shell command line",
	Description: `Run COMMANDLINE with the shell, exactly as written.
Several arguments are joined with single spaces.`,
	ArgsUsage: "COMMANDLINE",
	Flags:     spawnflags.Flags(),
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.NArg() == 0 {
			return cli.Exit("Please specify a command line to run.", 1)
		}

		return spawnflags.Run(ctx, cmd, subprocess.FromShellCommand(strings.Join(cmd.Args().Slice(), " ")))
	},
}
