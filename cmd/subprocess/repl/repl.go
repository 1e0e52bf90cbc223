// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl implements the repl command.
package repl

import (
	"context"

	"github.com/matt-FFFFFF/subprocess/cmd/subprocess/spawnflags"
	"github.com/matt-FFFFFF/subprocess/internal/repl"
	"github.com/urfave/cli/v3"
)

// ReplCmd starts an interactive prompt.
var ReplCmd = &cli.Command{
	Name:  "repl",
	Usage: "Start an interactive prompt that runs each line with the shell",
	Description: `Start an interactive prompt. Each line is run as a shell command and waited for.
The built-in cd changes the working directory of later commands.
Type exit or quit, press Ctrl+C or Ctrl+D to leave.`,
	Flags: spawnflags.Flags(),
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := spawnflags.Config(cmd)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		s := &repl.Session{
			Dir:   cfg.WorkingDirectory,
			Env:   cfg.Environment,
			Shell: cfg.Shell,
			Out:   cmd.Root().Writer,
		}

		if err := s.Run(ctx); err != nil {
			return cli.Exit(err.Error(), 1)
		}

		return nil
	},
}
