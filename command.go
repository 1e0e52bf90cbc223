// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package subprocess

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/subprocess/internal/ctxlog"
)

const (
	// DefaultShell is the interpreter used when Config.Shell is empty.
	DefaultShell  = "/bin/sh"
	commandSwitch = "-c" // Command switch for POSIX shells
)

// Config holds the settings applied to a process when it is spawned.
// The zero value inherits everything from the calling process.
type Config struct {
	// WorkingDirectory is the working directory of the child. Empty means inherit.
	WorkingDirectory string
	// Environment replaces the environment of the child. Nil means inherit,
	// a non-nil empty map gives the child an empty environment.
	Environment map[string]string
	// Shell is the path of the POSIX shell that interprets the command line. Empty means DefaultShell.
	Shell string
}

func (c Config) clone() Config {
	c.Environment = maps.Clone(c.Environment)
	return c
}

func (c Config) shell() string {
	if c.Shell == "" {
		return DefaultShell
	}

	return c.Shell
}

// environ renders the environment override in the KEY=value form os.StartProcess expects.
// It returns nil when the environment is inherited.
func (c Config) environ() []string {
	if c.Environment == nil {
		return nil
	}

	env := make([]string, 0, len(c.Environment))
	for _, k := range slices.Sorted(maps.Keys(c.Environment)) {
		env = append(env, fmt.Sprintf("%s=%s", k, c.Environment[k]))
	}

	return env
}

// validateEnvironment rejects variables that cannot be represented as a single KEY=value entry.
func (c Config) validateEnvironment() error {
	for _, k := range slices.Sorted(maps.Keys(c.Environment)) {
		switch {
		case k == "", strings.ContainsAny(k, "=\x00"):
			return fmt.Errorf("%w: name %q", ErrInvalidEnvironment, k)
		case strings.ContainsRune(c.Environment[k], 0):
			return fmt.Errorf("%w: value of %q contains NUL", ErrInvalidEnvironment, k)
		}
	}

	return nil
}

// Command is a shell command line that can be spawned any number of times.
// It is immutable, the With methods return modified copies.
type Command struct {
	shellCommand string
	config       Config
}

// FromShellCommand creates a command from a shell command line, which is passed to the shell verbatim.
func FromShellCommand(shellCommand string) *Command {
	return &Command{
		shellCommand: shellCommand,
	}
}

// FromProgramNameAndArguments creates a command that runs programName with the given arguments.
//
// When programName contains a slash it is interpreted as an absolute or relative path to the executable,
// otherwise the shell searches for it in PATH. The program receives programName as argument zero.
// Every token is quoted with Quote, so no word splitting, globbing or expansion happens.
func FromProgramNameAndArguments(programName string, arguments []string) *Command {
	return FromShellCommand(Join(slices.Concat([]string{programName}, arguments)...))
}

// ShellCommand returns the command line that is handed to the shell.
func (c *Command) ShellCommand() string {
	return c.shellCommand
}

// Config returns a copy of the command configuration.
func (c *Command) Config() Config {
	return c.config.clone()
}

// WithConfig returns a copy of the command using cfg.
func (c *Command) WithConfig(cfg Config) *Command {
	return &Command{
		shellCommand: c.shellCommand,
		config:       cfg.clone(),
	}
}

// WithWorkingDirectory returns a copy of the command that runs in dir.
func (c *Command) WithWorkingDirectory(dir string) *Command {
	cfg := c.Config()
	cfg.WorkingDirectory = dir

	return c.WithConfig(cfg)
}

// WithEnvironment returns a copy of the command whose child sees exactly env.
// The map is copied, later changes to it do not affect the command.
func (c *Command) WithEnvironment(env map[string]string) *Command {
	cfg := c.Config()
	cfg.Environment = env

	return c.WithConfig(cfg)
}

// WithShell returns a copy of the command interpreted by the shell at path.
func (c *Command) WithShell(path string) *Command {
	cfg := c.Config()
	cfg.Shell = path

	return c.WithConfig(cfg)
}

// Spawn starts the command and returns a handle to the running process.
// It returns once the process has been created, not once it has finished.
// The context only supplies the logger, spawning cannot be cancelled.
//
// If the process cannot be created the error matches ErrSpawnFailure and no process is returned.
// A malformed environment also matches ErrInvalidEnvironment.
func (c *Command) Spawn(ctx context.Context) (*Process, error) {
	cfg := c.config.clone()
	shell := cfg.shell()

	logger := ctxlog.Logger(ctx).With("shellCommand", c.shellCommand)
	if err := cfg.validateEnvironment(); err != nil {
		logger.Debug("spawn failed", "error", err)
		return nil, errors.Join(ErrSpawnFailure, err)
	}

	logger.Debug("spawning process", "shell", shell, "cwd", cfg.WorkingDirectory, "inheritEnv", cfg.Environment == nil)

	ps, err := os.StartProcess(shell, []string{filepath.Base(shell), commandSwitch, c.shellCommand}, &os.ProcAttr{
		Dir:   cfg.WorkingDirectory,
		Env:   cfg.environ(),
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	})
	if err != nil {
		logger.Debug("spawn failed", "error", err)
		return nil, errors.Join(ErrSpawnFailure, err)
	}

	logger.Debug("process spawned", "pid", ps.Pid)

	return newProcess(ps, logger), nil
}
