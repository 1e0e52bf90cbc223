// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"time"

	"github.com/matt-FFFFFF/subprocess"
)

// ErrSkipped is set on the result of a job that was not spawned because the context was done.
var ErrSkipped = errors.New("job skipped")

// ResultStatus is the outcome of a single job.
type ResultStatus int

const (
	// ResultStatusSuccess means the child exited with code 0.
	ResultStatusSuccess ResultStatus = iota
	// ResultStatusFailed means the child exited non-zero or was killed by a signal.
	ResultStatusFailed
	// ResultStatusError means the child could not be spawned or waited on.
	ResultStatusError
	// ResultStatusSkipped means the job was never spawned.
	ResultStatusSkipped
)

// Result is the outcome of running one job.
type Result struct {
	Label        string
	ShellCommand string
	Pid          int
	Status       subprocess.ExitStatus
	Error        error
	Duration     time.Duration
}

// ResultStatus classifies the result.
func (r *Result) ResultStatus() ResultStatus {
	switch {
	case errors.Is(r.Error, ErrSkipped):
		return ResultStatusSkipped
	case r.Error != nil:
		return ResultStatusError
	case !r.Status.Success():
		return ResultStatusFailed
	}

	return ResultStatusSuccess
}

// Results is the ordered list of job results, in the order the jobs were given.
type Results []*Result

// HasError reports whether any job did not succeed.
func (r Results) HasError() bool {
	for _, res := range r {
		if res.ResultStatus() != ResultStatusSuccess {
			return true
		}
	}

	return false
}

// Count returns the number of results with the given status.
func (r Results) Count(status ResultStatus) int {
	n := 0

	for _, res := range r {
		if res.ResultStatus() == status {
			n++
		}
	}

	return n
}
