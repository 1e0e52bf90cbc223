// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a mode name is not recognised.
var ErrUnknownMode = errors.New("unknown run mode")

// Mode selects how jobs are scheduled.
type Mode int

const (
	// ModeSerial spawns each job after the previous job has exited.
	ModeSerial Mode = iota
	// ModeParallel spawns every job, then waits for all of them.
	ModeParallel
)

const (
	modeSerialStr   = "serial"
	modeParallelStr = "parallel"
)

// ParseMode converts "serial" or "parallel" to a Mode. The empty string is serial.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", modeSerialStr:
		return ModeSerial, nil
	case modeParallelStr:
		return ModeParallel, nil
	}

	return ModeSerial, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeSerial:
		return modeSerialStr
	case ModeParallel:
		return modeParallelStr
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}
