// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package definition

import (
	"fmt"
	"path/filepath"

	"github.com/matt-FFFFFF/subprocess"
	"github.com/matt-FFFFFF/subprocess/internal/environ"
	"github.com/matt-FFFFFF/subprocess/internal/runner"
)

// File is the top level of a definition file.
type File struct {
	// Mode is "serial" or "parallel". Empty means serial.
	Mode     string       `yaml:"mode,omitempty" hcl:"mode,optional"`
	Commands []Definition `yaml:"commands" hcl:"command,block"`

	// baseDir resolves relative working directories. Set by Load.
	baseDir string
}

// Definition describes a single command.
type Definition struct {
	Name             string            `yaml:"name" hcl:"name,label"`
	ShellCommand     string            `yaml:"shell_command,omitempty" hcl:"shell_command,optional"`
	Program          string            `yaml:"program,omitempty" hcl:"program,optional"`
	Args             []string          `yaml:"args,omitempty" hcl:"args,optional"`
	WorkingDirectory string            `yaml:"working_directory,omitempty" hcl:"working_directory,optional"`
	Environment      map[string]string `yaml:"environment,omitempty" hcl:"environment,optional"`
	ClearEnvironment bool              `yaml:"clear_environment,omitempty" hcl:"clear_environment,optional"`
	Shell            string            `yaml:"shell,omitempty" hcl:"shell,optional"`
}

// Command validates the definition and builds the command it describes.
//
// The environment is inherited unless Environment or ClearEnvironment is set, in which case
// the child sees the overrides on top of the caller's environment, or on their own.
func (d *Definition) Command() (*subprocess.Command, error) {
	if d.Name == "" {
		return nil, ErrMissingName
	}

	var cmd *subprocess.Command

	switch {
	case d.ShellCommand != "" && (d.Program != "" || len(d.Args) > 0):
		return nil, fmt.Errorf("%s: %w", d.Name, ErrAmbiguousCommand)
	case d.ShellCommand != "":
		cmd = subprocess.FromShellCommand(d.ShellCommand)
	case d.Program != "":
		cmd = subprocess.FromProgramNameAndArguments(d.Program, d.Args)
	default:
		return nil, fmt.Errorf("%s: %w", d.Name, ErrNoCommand)
	}

	return cmd.WithConfig(subprocess.Config{
		WorkingDirectory: d.WorkingDirectory,
		Environment:      environ.Build(d.Environment, d.ClearEnvironment),
		Shell:            d.Shell,
	}), nil
}

// RunMode parses the file mode.
func (f *File) RunMode() (runner.Mode, error) {
	return runner.ParseMode(f.Mode) //nolint:wrapcheck
}

// Jobs builds one runner job per definition, in file order.
// Relative working directories are resolved against the directory of the file when it was loaded from disk.
func (f *File) Jobs() ([]runner.Job, error) {
	jobs := make([]runner.Job, 0, len(f.Commands))

	for i := range f.Commands {
		def := f.Commands[i]

		if f.baseDir != "" && def.WorkingDirectory != "" && !filepath.IsAbs(def.WorkingDirectory) {
			def.WorkingDirectory = filepath.Join(f.baseDir, def.WorkingDirectory)
		}

		cmd, err := def.Command()
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}

		jobs = append(jobs, runner.Job{Label: def.Name, Command: cmd})
	}

	return jobs, nil
}
