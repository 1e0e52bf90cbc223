// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package exec implements the exec command, which runs a program with literal arguments.
package exec

import (
	"context"

	"github.com/matt-FFFFFF/subprocess"
	"github.com/matt-FFFFFF/subprocess/cmd/subprocess/spawnflags"
	"github.com/matt-FFFFFF/subprocess/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// ExecCmd runs a program with arguments that are never interpreted by the shell.
var ExecCmd = &cli.Command{
	Name:  "exec",
	Usage: "Run a program with literal arguments",
	Description: `Run PROGRAM with ARGS. Every token is quoted before it is handed to the shell,
so no globbing, variable expansion or word splitting happens.
PROGRAM is looked up in PATH unless it contains a slash.

Put -- before PROGRAM if any argument starts with a dash.
The exit code is the exit code of the program, or 128 plus the signal number if it was killed.`,
	ArgsUsage: "PROGRAM [ARGS...]",
	Flags:     spawnflags.Flags(),
	Action:    actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return cli.Exit("Please specify a program to run.", 1)
	}

	c := subprocess.FromProgramNameAndArguments(args[0], args[1:])
	ctxlog.Debug(ctx, "running exec command", "shellCommand", c.ShellCommand())

	return spawnflags.Run(ctx, cmd, c)
}
