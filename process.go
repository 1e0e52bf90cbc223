// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package subprocess

import (
	"errors"
	"log/slog"
	"os"
	"sync"
)

// Process is a handle to a spawned child process.
// It owns the operating system handle until Wait releases it.
type Process struct {
	mu     sync.Mutex
	ps     *os.Process // nil once released
	pid    int
	logger *slog.Logger
}

func newProcess(ps *os.Process, logger *slog.Logger) *Process {
	return &Process{
		ps:     ps,
		pid:    ps.Pid,
		logger: logger,
	}
}

// Pid returns the operating system process id of the child.
func (p *Process) Pid() int {
	if p == nil {
		return 0
	}

	return p.pid
}

// Wait blocks until the process terminates, releases the handle and returns how the process exited.
//
// Wait may be called once. Later calls, including concurrent ones that lose the race,
// return ErrProcessReleased.
func (p *Process) Wait() (ExitStatus, error) {
	if p == nil {
		return ExitStatus{}, ErrProcessReleased
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ps == nil {
		return ExitStatus{}, ErrProcessReleased
	}

	ps := p.ps
	p.ps = nil

	p.logger.Debug("waiting for process to finish", "pid", p.pid)

	state, err := ps.Wait()
	if err != nil {
		p.logger.Debug("wait failed", "pid", p.pid, "error", err)
		return ExitStatus{}, errors.Join(ErrWaitFailed, err)
	}

	status := exitStatusFromState(state)
	p.logger.Debug("process finished", "pid", p.pid, "exitCode", status.Code, "signal", int(status.Signal))

	return status, nil
}
