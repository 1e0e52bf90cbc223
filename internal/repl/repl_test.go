// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/subprocess"
	"github.com/peterh/liner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakePrompter struct {
	lines   []string
	err     error
	history []string
	prompts []string
}

func (f *fakePrompter) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)

	if len(f.lines) == 0 {
		return "", f.err
	}

	l := f.lines[0]
	f.lines = f.lines[1:]

	return l, nil
}

func (f *fakePrompter) AppendHistory(item string) {
	f.history = append(f.history, item)
}

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestSession_Execute(t *testing.T) {
	skipOnWindows(t)

	s := &Session{}

	status, err := s.Execute(context.Background(), "   ")
	require.NoError(t, err)
	assert.True(t, status.Success())

	status, err = s.Execute(context.Background(), "exit 5")
	require.NoError(t, err)
	assert.Equal(t, 5, status.Code)
}

func TestSession_ExecuteUsesDirAndEnv(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	s := &Session{Dir: dir, Env: map[string]string{"REPL_TEST": "value"}}

	_, err := s.Execute(context.Background(), `printf '%s' "$REPL_TEST" > out`)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Equal(t, "value", string(got))
}

func TestSession_ExecuteSpawnFailure(t *testing.T) {
	s := &Session{Dir: filepath.Join(t.TempDir(), "missing")}

	_, err := s.Execute(context.Background(), "true")
	require.ErrorIs(t, err, subprocess.ErrSpawnFailure)
}

func TestSession_ChangeDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file"), nil, 0o600))

	s := &Session{Dir: root}

	_, err := s.Execute(context.Background(), "cd sub")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sub"), s.Dir)

	_, err = s.Execute(context.Background(), "cd ..")
	require.NoError(t, err)
	assert.Equal(t, root, s.Dir)

	_, err = s.Execute(context.Background(), "cd "+filepath.Join(root, "sub"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "sub"), s.Dir)

	for _, line := range []string{"cd ../file", "cd ../missing"} {
		_, err = s.Execute(context.Background(), line)
		require.ErrorIs(t, err, ErrChangeDirectory, line)
		assert.Equal(t, filepath.Join(root, "sub"), s.Dir)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	_, err = s.Execute(context.Background(), "cd")
	require.NoError(t, err)
	assert.Equal(t, home, s.Dir)
}

func TestParseChangeDirectory(t *testing.T) {
	tests := []struct {
		line       string
		wantTarget string
		wantOK     bool
	}{
		{line: "cd", wantOK: true},
		{line: "cd sub", wantTarget: "sub", wantOK: true},
		{line: "cd\t/tmp", wantTarget: "/tmp", wantOK: true},
		{line: "cd 'my dir'", wantTarget: "my dir", wantOK: true},
		{line: `cd "my dir"`, wantTarget: "my dir", wantOK: true},
		{line: "cd ~", wantTarget: "~", wantOK: true},
		{line: "cd ~/src", wantTarget: "~/src", wantOK: true},
		{line: "cd /tmp && echo hi"},
		{line: "cd a b"},
		{line: "cd $HOME"},
		{line: `cd "$HOME"`},
		{line: "cd '~'"},
		{line: "cd 'unterminated"},
		{line: "cd ''"},
		{line: "cdrom"},
		{line: "echo cd"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			target, ok := parseChangeDirectory(tt.line)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.wantTarget, target)
			}
		})
	}
}

func TestSession_ChangeDirectoryQuotedAndTilde(t *testing.T) {
	skipOnWindows(t)

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "my dir"), 0o755))
	t.Setenv("HOME", root)

	s := &Session{Dir: root}

	_, err := s.Execute(context.Background(), "cd 'my dir'")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "my dir"), s.Dir)

	_, err = s.Execute(context.Background(), "cd ~")
	require.NoError(t, err)
	assert.Equal(t, root, s.Dir)

	_, err = s.Execute(context.Background(), `cd ~/"my dir"`)
	require.NoError(t, err, "compound words go to the shell")
	assert.Equal(t, root, s.Dir)

	_, err = s.Execute(context.Background(), "cd ~/my")
	require.ErrorIs(t, err, ErrChangeDirectory)
}

func TestSession_CompoundChangeDirectoryRunsInShell(t *testing.T) {
	skipOnWindows(t)

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0o755))

	s := &Session{Dir: root}

	status, err := s.Execute(context.Background(), "cd sub && touch created")
	require.NoError(t, err)
	assert.True(t, status.Success())
	assert.FileExists(t, filepath.Join(root, "sub", "created"))
	assert.Equal(t, root, s.Dir, "a cd inside a shell line does not change the session")
}

func TestSession_Loop(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	out := &bytes.Buffer{}
	s := &Session{Dir: dir, Out: out}
	p := &fakePrompter{lines: []string{"", "touch created", "exit 2", "cd /definitely/not/here", "quit", "touch never"}}

	require.NoError(t, s.loop(context.Background(), p))

	assert.FileExists(t, filepath.Join(dir, "created"))
	assert.NoFileExists(t, filepath.Join(dir, "never"))
	assert.Equal(t, []string{"touch created", "exit 2", "cd /definitely/not/here"}, p.history)
	assert.Equal(t, filepath.Base(dir)+"$ ", p.prompts[0])
	assert.Contains(t, out.String(), "exit status 2")
	assert.Contains(t, out.String(), ErrChangeDirectory.Error())
}

func TestSession_LoopEnds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "eof", err: io.EOF},
		{name: "aborted", err: liner.ErrPromptAborted},
		{name: "other", err: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{Out: io.Discard}

			err := s.loop(context.Background(), &fakePrompter{err: tt.err})
			if tt.wantErr {
				require.ErrorIs(t, err, tt.err)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSession_LoopCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &fakePrompter{lines: []string{"true"}}
	err := (&Session{Out: io.Discard}).loop(ctx, p)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, p.prompts)
}
