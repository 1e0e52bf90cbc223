// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run command, which runs the commands of one or more definition files.
package run

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/subprocess/internal/ctxlog"
	"github.com/matt-FFFFFF/subprocess/internal/runner"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag     = "file"
	parallelFlag = "parallel"
	cliExitStr   = ""
)

// RunCmd runs the commands described by definition files.
var RunCmd = &cli.Command{
	Name:  "run",
	Usage: "Run the commands defined in YAML or HCL files",
	Description: `Run the commands defined in one or more definition files.
Files ending in .yaml or .yml are decoded as YAML, files ending in .hcl as HCL.
Files run one after the other, the commands of each file run in the mode the file sets.
Relative working directories resolve against the directory of a local file,
and against the current directory for a downloaded one.

Definition file URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.`,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    fileFlag,
			Aliases: []string{"f"},
			Usage: "Specify the URL of a definition file to run. " +
				"Supports Hashicorp's go-getter syntax. Specify multiple times to run multiple files.",
		},
		&cli.BoolFlag{
			Name:        parallelFlag,
			Aliases:     []string{"p"},
			Usage:       "Run the commands of every file in parallel, whatever mode the file sets",
			Value:       false,
			DefaultText: "false",
			OnlyOnce:    true,
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("running run command")

	urls := cmd.StringSlice(fileFlag)
	if len(urls) == 0 {
		logger.Error("Please specify at least one definition file URL using the --file or -f flag.")
		return cli.Exit(cliExitStr, 1)
	}

	batches := make([]batch, 0, len(urls))

	for i, u := range urls {
		if u == "" {
			logger.Error(fmt.Sprintf("The URL at index %d is empty. Please provide a valid URL.", i))
			return cli.Exit(cliExitStr, 1)
		}

		b, err := loadBatch(ctx, u, cmd.Bool(parallelFlag))
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to load definition file %s: %s", u, err.Error()))
			return cli.Exit(cliExitStr, 1)
		}

		batches = append(batches, b)
	}

	var (
		all    runner.Results
		runErr error
	)

	for _, b := range batches {
		res, err := runner.Run(ctx, b.mode, b.jobs...)
		all = append(all, res...)
		runErr = errors.Join(runErr, err)
	}

	if err := all.Write(cmd.Root().Writer); err != nil {
		logger.Error(fmt.Sprintf("Failed to write results: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	if runErr != nil {
		logger.Debug("run errors", "error", runErr)
	}

	if all.HasError() {
		logger.Error("Some commands failed. See above for details.")
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

type batch struct {
	mode runner.Mode
	jobs []runner.Job
}

func loadBatch(ctx context.Context, url string, forceParallel bool) (batch, error) {
	f, err := fetchDefinition(ctx, url)
	if err != nil {
		return batch{}, err
	}

	mode, err := f.RunMode()
	if err != nil {
		return batch{}, err //nolint:wrapcheck
	}

	if forceParallel {
		mode = runner.ModeParallel
	}

	jobs, err := f.Jobs()
	if err != nil {
		return batch{}, err //nolint:wrapcheck
	}

	return batch{mode: mode, jobs: jobs}, nil
}
