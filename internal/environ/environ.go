// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package environ builds environment overrides for spawned commands.
package environ

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
)

// ErrInvalidPair is returned when an environment assignment is not of the form KEY=VALUE.
var ErrInvalidPair = errors.New("environment variable must be KEY=VALUE")

// FromOS returns the environment of the calling process as a map.
func FromOS() map[string]string {
	return fromPairs(os.Environ())
}

func fromPairs(pairs []string) map[string]string {
	env := make(map[string]string, len(pairs))

	for _, kv := range pairs {
		// Windows keeps per-drive working directories in variables such as "=C:".
		k, v, ok := strings.Cut(kv[min(1, len(kv)):], "=")
		if !ok {
			continue
		}

		env[kv[:min(1, len(kv))]+k] = v
	}

	return env
}

// Build returns the environment a child should receive.
//
// Without overrides and without clear it returns nil, meaning the child inherits the environment.
// Otherwise the overrides are laid over the calling process environment, or over an empty one if clear is set.
func Build(overrides map[string]string, clear bool) map[string]string {
	if !clear && len(overrides) == 0 {
		return nil
	}

	env := make(map[string]string, len(overrides))
	if !clear {
		env = FromOS()
	}

	maps.Copy(env, overrides)

	return env
}

// ParsePairs parses KEY=VALUE assignments. Later assignments to a key win.
func ParsePairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	env := make(map[string]string, len(pairs))

	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPair, kv)
		}

		env[k] = v
	}

	return env, nil
}
