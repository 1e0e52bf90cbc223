// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/subprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func shellJob(label, line string) Job {
	return Job{Label: label, Command: subprocess.FromShellCommand(line)}
}

func TestRun_SerialOrder(t *testing.T) {
	skipOnWindows(t)

	out := filepath.Join(t.TempDir(), "order")
	jobs := make([]Job, 0, 3)

	for i := range 3 {
		jobs = append(jobs, shellJob(fmt.Sprintf("job%d", i), fmt.Sprintf("sleep 0.0%d; echo %d >> %s", 3-i, i, subprocess.Quote(out))))
	}

	results, err := Run(context.Background(), ModeSerial, jobs...)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.False(t, results.HasError())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", string(got))

	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("job%d", i), res.Label)
		assert.NotZero(t, res.Pid)
		assert.Equal(t, ResultStatusSuccess, res.ResultStatus())
	}
}

func TestRun_ParallelRunsConcurrently(t *testing.T) {
	skipOnWindows(t)

	marker := subprocess.Quote(filepath.Join(t.TempDir(), "marker"))

	// The first job only succeeds if the second job runs while it is still waiting.
	waiter := fmt.Sprintf("i=0; while [ ! -f %s ] && [ $i -lt 500 ]; do sleep 0.01; i=$((i+1)); done; [ -f %s ]", marker, marker)

	results, err := Run(context.Background(), ModeParallel,
		shellJob("waiter", waiter),
		shellJob("toucher", "touch "+marker),
	)
	require.NoError(t, err)
	assert.False(t, results.HasError())
	assert.Equal(t, "waiter", results[0].Label)
	assert.Equal(t, "toucher", results[1].Label)
}

func TestRun_ExitStatusIsNotAnError(t *testing.T) {
	skipOnWindows(t)

	for _, mode := range []Mode{ModeSerial, ModeParallel} {
		t.Run(mode.String(), func(t *testing.T) {
			results, err := Run(context.Background(), mode, shellJob("ok", "true"), shellJob("fails", "exit 4"))
			require.NoError(t, err)
			assert.True(t, results.HasError())
			assert.Equal(t, ResultStatusSuccess, results[0].ResultStatus())
			assert.Equal(t, ResultStatusFailed, results[1].ResultStatus())
			assert.Equal(t, 4, results[1].Status.Code)
		})
	}
}

func TestRun_AggregatesSpawnErrors(t *testing.T) {
	skipOnWindows(t)

	missing := filepath.Join(t.TempDir(), "missing")

	for _, mode := range []Mode{ModeSerial, ModeParallel} {
		t.Run(mode.String(), func(t *testing.T) {
			results, err := Run(context.Background(), mode,
				Job{Label: "a", Command: subprocess.FromShellCommand("true").WithWorkingDirectory(missing)},
				shellJob("b", "true"),
				Job{Label: "c", Command: subprocess.FromShellCommand("true").WithShell(missing)},
			)
			require.Error(t, err)
			require.ErrorIs(t, err, subprocess.ErrSpawnFailure)

			var merr *multierror.Error
			require.ErrorAs(t, err, &merr)
			assert.Len(t, merr.Errors, 2)

			assert.Equal(t, ResultStatusError, results[0].ResultStatus())
			assert.Equal(t, ResultStatusSuccess, results[1].ResultStatus())
			assert.Equal(t, ResultStatusError, results[2].ResultStatus())
		})
	}
}

func TestRun_CancelledContextSkips(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, mode := range []Mode{ModeSerial, ModeParallel} {
		t.Run(mode.String(), func(t *testing.T) {
			results, err := Run(ctx, mode, shellJob("a", "true"), shellJob("b", "true"))
			require.NoError(t, err)
			require.Len(t, results, 2)

			for _, res := range results {
				assert.Equal(t, ResultStatusSkipped, res.ResultStatus())
				require.ErrorIs(t, res.Error, context.Canceled)
				assert.Zero(t, res.Pid)
			}

			assert.True(t, results.HasError())
		})
	}
}

func TestRun_UnknownMode(t *testing.T) {
	results, err := Run(context.Background(), Mode(9), shellJob("a", "true"))
	require.ErrorIs(t, err, ErrUnknownMode)
	assert.Nil(t, results)
}

func TestRun_NoJobs(t *testing.T) {
	results, err := Run(context.Background(), ModeParallel)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.False(t, results.HasError())
}

func TestResults_Write(t *testing.T) {
	results := Results{
		{Label: "ok", Pid: 10, Status: subprocess.ExitStatus{Code: 0}},
		{Label: "", Pid: 11, Status: subprocess.ExitStatus{Code: 2}},
		{Label: "bad", Error: subprocess.ErrSpawnFailure},
		{Label: "later", Error: ErrSkipped},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, results.Write(buf))

	out := buf.String()
	assert.Contains(t, out, "✓ ok (exit status 0, pid 10,")
	assert.Contains(t, out, "✗ [unnamed] (exit status 2, pid 11,")
	assert.Contains(t, out, "✗ bad (error: could not spawn process)")
	assert.Contains(t, out, "~ later (skipped)")
	assert.Contains(t, out, "1 succeeded, 2 failed, 1 skipped")
}
