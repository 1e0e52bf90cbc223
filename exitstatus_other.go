// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package subprocess

import (
	"os"
	"syscall"
)

func exitStatusFromState(state *os.ProcessState) ExitStatus {
	return ExitStatus{Code: state.ExitCode()}
}

func signalName(sig syscall.Signal) string {
	return sig.String()
}
