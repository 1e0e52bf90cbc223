// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package spawnflags holds the flags shared by the commands that spawn a child process.
package spawnflags

import (
	"context"

	"github.com/matt-FFFFFF/subprocess"
	"github.com/matt-FFFFFF/subprocess/internal/ctxlog"
	"github.com/matt-FFFFFF/subprocess/internal/environ"
	"github.com/urfave/cli/v3"
)

const (
	cwdFlag      = "cwd"
	envFlag      = "env"
	clearEnvFlag = "clear-env"
	shellFlag    = "shell"

	signalExitBase = 128
)

// Flags returns a fresh set of the shared flags.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      cwdFlag,
			Aliases:   []string{"C"},
			Usage:     "Working directory of the child. Defaults to the current directory.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringSliceFlag{
			Name:    envFlag,
			Aliases: []string{"e"},
			Usage:   "Set an environment variable for the child, as KEY=VALUE. Specify multiple times to set several.",
		},
		&cli.BoolFlag{
			Name:        clearEnvFlag,
			Usage:       "Start the child with an empty environment, apart from --env values",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:     shellFlag,
			Usage:    "POSIX shell that interprets the command line",
			Value:    subprocess.DefaultShell,
			OnlyOnce: true,
		},
	}
}

// Config builds the process configuration from the shared flags.
func Config(cmd *cli.Command) (subprocess.Config, error) {
	overrides, err := environ.ParsePairs(cmd.StringSlice(envFlag))
	if err != nil {
		return subprocess.Config{}, err //nolint:wrapcheck
	}

	return subprocess.Config{
		WorkingDirectory: cmd.String(cwdFlag),
		Environment:      environ.Build(overrides, cmd.Bool(clearEnvFlag)),
		Shell:            cmd.String(shellFlag),
	}, nil
}

// Run applies the shared flags to c, spawns it and waits for it.
// A non-zero exit becomes a cli.ExitCoder carrying the child's code, or 128 plus the signal number.
func Run(ctx context.Context, cmd *cli.Command, c *subprocess.Command) error {
	cfg, err := Config(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ps, err := c.WithConfig(cfg).Spawn(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	status, err := ps.Wait()
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	ctxlog.Debug(ctx, "child exited", "status", status.String())

	if code := ExitCode(status); code != 0 {
		return cli.Exit("", code)
	}

	return nil
}

// ExitCode maps an exit status to the code a shell would report for it.
func ExitCode(status subprocess.ExitStatus) int {
	if status.Signaled() {
		return signalExitBase + int(status.Signal)
	}

	return status.Code
}
