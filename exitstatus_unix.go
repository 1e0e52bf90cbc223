// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package subprocess

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

func exitStatusFromState(state *os.ProcessState) ExitStatus {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitStatus{
			Code:   -1,
			Signal: ws.Signal(),
		}
	}

	return ExitStatus{Code: state.ExitCode()}
}

func signalName(sig syscall.Signal) string {
	if name := unix.SignalName(sig); name != "" {
		return name
	}

	return sig.String()
}
