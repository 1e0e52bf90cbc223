// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repl is an interactive prompt that runs each line as a shell command.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matt-FFFFFF/subprocess"
	"github.com/matt-FFFFFF/subprocess/internal/ctxlog"
	"github.com/peterh/liner"
)

// ErrChangeDirectory is returned by the cd built-in when the target is not a directory.
var ErrChangeDirectory = errors.New("cannot change directory")

// Session holds the state shared by the commands of one interactive session.
type Session struct {
	// Dir is the working directory of spawned commands. The cd built-in changes it.
	Dir string
	// Env is the environment of spawned commands. Nil means inherit.
	Env map[string]string
	// Shell interprets each line. Empty means subprocess.DefaultShell.
	Shell string
	// Out receives session messages. Children write to the inherited standard streams.
	Out io.Writer
}

// prompter is the part of *liner.State the loop uses.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Execute runs one line. Blank lines do nothing, "cd" with at most one plain or fully quoted
// argument changes Dir, anything else is spawned as a shell command and waited for.
func (s *Session) Execute(ctx context.Context, line string) (subprocess.ExitStatus, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return subprocess.ExitStatus{}, nil
	}

	if target, ok := parseChangeDirectory(line); ok {
		return subprocess.ExitStatus{}, s.changeDirectory(target)
	}

	cmd := subprocess.FromShellCommand(line).WithConfig(subprocess.Config{
		WorkingDirectory: s.Dir,
		Environment:      s.Env,
		Shell:            s.Shell,
	})

	ps, err := cmd.Spawn(ctx)
	if err != nil {
		return subprocess.ExitStatus{}, err //nolint:wrapcheck
	}

	return ps.Wait() //nolint:wrapcheck
}

// shellMetacharacters make a cd line a job for the shell rather than the built-in.
const shellMetacharacters = " \t|&;<>()$`\\\"'*?[]#~=%{}!"

// parseChangeDirectory reports whether line is a cd the built-in can run, and its target.
// The target is empty for a bare cd. An argument wrapped in single quotes, or in double
// quotes with nothing inside that the shell would expand, is taken literally.
func parseChangeDirectory(line string) (string, bool) {
	if line == "cd" {
		return "", true
	}

	arg, found := strings.CutPrefix(line, "cd")
	if !found || arg == "" || (arg[0] != ' ' && arg[0] != '\t') {
		return "", false
	}

	arg = strings.TrimLeft(arg, " \t")

	if unquoted, ok := unquoteWord(arg); ok {
		return unquoted, unquoted != "" && !strings.HasPrefix(unquoted, "~")
	}

	if arg == "~" || strings.HasPrefix(arg, "~/") {
		return arg, !strings.ContainsAny(arg[1:], shellMetacharacters)
	}

	return arg, !strings.ContainsAny(arg, shellMetacharacters)
}

func unquoteWord(arg string) (string, bool) {
	if len(arg) < 2 { //nolint:mnd
		return "", false
	}

	inner := arg[1 : len(arg)-1]

	switch {
	case arg[0] == '\'' && arg[len(arg)-1] == '\'':
		return inner, !strings.Contains(inner, "'")
	case arg[0] == '"' && arg[len(arg)-1] == '"':
		return inner, !strings.ContainsAny(inner, "\"$`\\!")
	}

	return "", false
}

func (s *Session) changeDirectory(target string) error {
	if target == "" || target == "~" || strings.HasPrefix(target, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Join(ErrChangeDirectory, err)
		}

		if target == "" {
			target = home
		} else {
			target = filepath.Join(home, target[1:])
		}
	}

	if !filepath.IsAbs(target) {
		base := s.Dir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return errors.Join(ErrChangeDirectory, err)
			}

			base = wd
		}

		target = filepath.Join(base, target)
	}

	info, err := os.Stat(target)
	if err != nil {
		return errors.Join(ErrChangeDirectory, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrChangeDirectory, target)
	}

	s.Dir = target

	return nil
}

// Run reads lines from the terminal until exit, quit, Ctrl+C, end of input or a cancelled context.
func (s *Session) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer func() {
		_ = line.Close()
	}()

	line.SetCtrlCAborts(true)

	return s.loop(ctx, line)
}

func (s *Session) loop(ctx context.Context, p prompter) error {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintln(out, "Type `exit` or `quit` or press Ctrl+C to leave.") //nolint:errcheck

	for ctx.Err() == nil {
		input, err := p.Prompt(s.prompt())

		switch {
		case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return fmt.Errorf("error reading line: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "exit" || input == "quit" {
			return nil
		}

		if input == "" {
			continue
		}

		p.AppendHistory(input)

		status, err := s.Execute(ctx, input)
		if err != nil {
			fmt.Fprintln(out, err) //nolint:errcheck
			continue
		}

		ctxlog.Debug(ctx, "command finished", "shellCommand", input, "status", status.String())

		if !status.Success() {
			fmt.Fprintln(out, status) //nolint:errcheck
		}
	}

	return ctx.Err() //nolint:wrapcheck
}

func (s *Session) prompt() string {
	dir := s.Dir
	if dir == "" {
		dir, _ = os.Getwd()
	}

	return filepath.Base(dir) + "$ "
}
