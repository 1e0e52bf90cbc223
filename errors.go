// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package subprocess

import "errors"

var (
	// ErrSpawnFailure is returned when the operating system could not create the process.
	ErrSpawnFailure = errors.New("could not spawn process")
	// ErrInvalidEnvironment is returned together with ErrSpawnFailure when an environment
	// variable name is empty or contains '=' or NUL, or a value contains NUL.
	ErrInvalidEnvironment = errors.New("invalid environment variable")
	// ErrProcessReleased is returned when waiting on a process that has already been waited on.
	ErrProcessReleased = errors.New("process already released")
	// ErrWaitFailed is returned when the operating system wait call fails.
	ErrWaitFailed = errors.New("failed to wait for process")
)
