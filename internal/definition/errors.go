// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package definition

import "errors"

var (
	// ErrReadFile is returned when a definition file cannot be read.
	ErrReadFile = errors.New("could not read definition file")
	// ErrUnknownFormat is returned when the file extension is not .yaml, .yml or .hcl.
	ErrUnknownFormat = errors.New("unknown definition file format")
	// ErrDecode is returned when a definition file is not valid.
	ErrDecode = errors.New("could not decode definition file")
	// ErrNoCommand is returned when a definition has neither shell_command nor program.
	ErrNoCommand = errors.New("one of shell_command or program is required")
	// ErrAmbiguousCommand is returned when a definition has both shell_command and program.
	ErrAmbiguousCommand = errors.New("shell_command cannot be combined with program or args")
	// ErrMissingName is returned when a definition has no name.
	ErrMissingName = errors.New("command name is required")
)
