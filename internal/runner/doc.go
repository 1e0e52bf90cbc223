// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner spawns a list of commands and waits for all of them.
//
// In serial mode each command is spawned only after the previous one has exited.
// In parallel mode every command is spawned first and then all are waited on together.
// A cancelled context stops further spawning but never interrupts a running child.
package runner
