// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package subprocess spawns child processes through a POSIX shell and returns a handle
// that can be waited on.
//
// A Command is an immutable shell command line plus a Config holding the working
// directory, environment and shell interpreter overrides. Commands are built either
// verbatim from a shell command line, or from a program name and argument vector,
// in which case every token is single-quoted so the shell passes it through literally.
//
//	cmd := subprocess.FromProgramNameAndArguments("echo", []string{"hello", "world"}).
//		WithWorkingDirectory("/tmp")
//
//	proc, err := cmd.Spawn(ctx)
//	if err != nil {
//		return err // errors.Is(err, subprocess.ErrSpawnFailure)
//	}
//
//	status, err := proc.Wait()
//
// The child inherits the standard streams of the calling process.
// Every Process must be waited on exactly once, otherwise the child is never reaped.
package subprocess
