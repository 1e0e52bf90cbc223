// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package definition decodes YAML and HCL files that describe a list of commands to run.
//
// A YAML file looks like:
//
//	mode: serial
//	commands:
//	  - name: greet
//	    program: echo
//	    args: ["hello", "world"]
//	  - name: count
//	    shell_command: "ls | wc -l"
//	    working_directory: /tmp
//
// The same file in HCL, where env.NAME reads the caller's environment:
//
//	mode = "serial"
//	command "greet" {
//	  program = "echo"
//	  args    = ["hello", env.USER]
//	}
package definition
