// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the subprocess command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/subprocess"
	"github.com/matt-FFFFFF/subprocess/cmd/subprocess/exec"
	"github.com/matt-FFFFFF/subprocess/cmd/subprocess/quote"
	"github.com/matt-FFFFFF/subprocess/cmd/subprocess/repl"
	"github.com/matt-FFFFFF/subprocess/cmd/subprocess/run"
	"github.com/matt-FFFFFF/subprocess/cmd/subprocess/shell"
	"github.com/matt-FFFFFF/subprocess/internal/ctxlog"
	"github.com/matt-FFFFFF/subprocess/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const logJSONFlag = "log-json"

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		exec.ExecCmd,
		shell.ShellCmd,
		quote.QuoteCmd,
		run.RunCmd,
		repl.ReplCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "subprocess",
	Description: `subprocess spawns child processes through a POSIX shell.
Programs and arguments are quoted so they reach the child unchanged,
while shell command lines are passed to the shell exactly as written.
Children inherit the standard streams of subprocess.`,
	Usage:                     "subprocess exec -- ls -la",
	Copyright:                 "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	DisableSliceFlagSeparator: true,
	EnableShellCompletion:     true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:        logJSONFlag,
			Usage:       "Write log records to stderr as JSON",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	},
	Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cmd.Bool(logJSONFlag) {
			return ctxlog.New(ctx, ctxlog.JSONLogger), nil
		}

		return ctx, nil
	},
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", subprocess.Version, subprocess.Commit)

	err := rootCmd.Run(ctx, os.Args) // exit codes from cli.Exit are handled by the cli framework

	if ctx.Err() != nil {
		ctxlog.Error(ctx, "command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1) //nolint:gocritic
	}

	if err != nil {
		ctxlog.Error(ctx, "command execution failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	ctxlog.Info(ctx, "command completed successfully")
}
