// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package subprocess_test

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/subprocess"
)

func ExampleQuote() {
	fmt.Println(subprocess.Quote("it's"))
	// Output: 'it'\''s'
}

func ExampleFromProgramNameAndArguments() {
	cmd := subprocess.FromProgramNameAndArguments("echo", []string{"hel lo", "$HOME"})
	fmt.Println(cmd.ShellCommand())
	// Output: 'echo' 'hel lo' '$HOME'
}

func ExampleCommand_Spawn() {
	proc, err := subprocess.FromShellCommand("exit 2").Spawn(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}

	status, err := proc.Wait()
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(status)
	// Output: exit status 2
}
