// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package subprocess

import (
	"strconv"
	"syscall"
)

// ExitStatus describes how a child process terminated.
type ExitStatus struct {
	// Code is the exit code of the process, or -1 if it was terminated by a signal.
	Code int
	// Signal is the signal that terminated the process, zero if it exited normally.
	Signal syscall.Signal
}

// Signaled reports whether the process was terminated by a signal.
func (s ExitStatus) Signaled() bool {
	return s.Signal != 0
}

// Success reports whether the process exited normally with code 0.
func (s ExitStatus) Success() bool {
	return !s.Signaled() && s.Code == 0
}

// String implements fmt.Stringer.
func (s ExitStatus) String() string {
	if s.Signaled() {
		return "signal: " + signalName(s.Signal)
	}

	return "exit status " + strconv.Itoa(s.Code)
}
