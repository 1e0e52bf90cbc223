// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/subprocess"
	"github.com/matt-FFFFFF/subprocess/internal/ctxlog"
)

// Job is a labelled command to run.
type Job struct {
	Label   string
	Command *subprocess.Command
}

// Run runs the jobs in the given mode and returns one result per job, in job order.
//
// The returned error aggregates every spawn and wait error. A non-zero exit status is
// not an error, use Results.HasError to detect it.
func Run(ctx context.Context, mode Mode, jobs ...Job) (Results, error) {
	runID := uuid.NewString()
	ctx = ctxlog.New(ctx, ctxlog.Logger(ctx).With("runID", runID, "mode", mode.String()))

	ctxlog.Debug(ctx, "starting run", "jobs", len(jobs))

	results := make(Results, len(jobs))
	for i, job := range jobs {
		results[i] = &Result{
			Label:        job.Label,
			ShellCommand: job.Command.ShellCommand(),
		}
	}

	switch mode {
	case ModeSerial:
		runSerial(ctx, jobs, results)
	case ModeParallel:
		runParallel(ctx, jobs, results)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}

	var err *multierror.Error

	for _, res := range results {
		if res.Error != nil && !errors.Is(res.Error, ErrSkipped) {
			err = multierror.Append(err, fmt.Errorf("%s: %w", labelOf(res), res.Error))
		}
	}

	ctxlog.Debug(ctx, "run finished",
		"succeeded", results.Count(ResultStatusSuccess),
		"failed", results.Count(ResultStatusFailed),
		"errored", results.Count(ResultStatusError),
		"skipped", results.Count(ResultStatusSkipped),
	)

	return results, err.ErrorOrNil()
}

func runSerial(ctx context.Context, jobs []Job, results Results) {
	for i, job := range jobs {
		if ctx.Err() != nil {
			skip(ctx, results[i])
			continue
		}

		start := time.Now()

		ps, err := job.Command.Spawn(ctx)
		if err != nil {
			results[i].Error = err
			continue
		}

		wait(ps, results[i], start)
	}
}

func runParallel(ctx context.Context, jobs []Job, results Results) {
	procs := make([]*subprocess.Process, len(jobs))
	starts := make([]time.Time, len(jobs))

	for i, job := range jobs {
		if ctx.Err() != nil {
			skip(ctx, results[i])
			continue
		}

		starts[i] = time.Now()

		ps, err := job.Command.Spawn(ctx)
		if err != nil {
			results[i].Error = err
			continue
		}

		procs[i] = ps
	}

	wg := &sync.WaitGroup{}

	for i, ps := range procs {
		if ps == nil {
			continue
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			wait(ps, results[i], starts[i])
		}()
	}

	wg.Wait()
}

// wait is safe to call concurrently for distinct results.
func wait(ps *subprocess.Process, res *Result, start time.Time) {
	res.Pid = ps.Pid()
	res.Status, res.Error = ps.Wait()
	res.Duration = time.Since(start)
}

func skip(ctx context.Context, res *Result) {
	res.Error = errors.Join(ErrSkipped, ctx.Err())
	ctxlog.Info(ctx, "skipping job", "label", res.Label)
}

func labelOf(res *Result) string {
	if res.Label == "" {
		return unnamedLabel
	}

	return res.Label
}
