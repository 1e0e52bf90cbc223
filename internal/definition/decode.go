// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package definition

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/subprocess/internal/ctxlog"
	"github.com/matt-FFFFFF/subprocess/internal/environ"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
)

// Load reads and decodes the definition file at path using FsFactory.
func Load(ctx context.Context, path string) (*File, error) {
	data, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}

	f, err := Decode(ctx, path, data)
	if err != nil {
		return nil, err
	}

	f.baseDir = filepath.Dir(path)

	return f, nil
}

// Decode decodes data as YAML or HCL, chosen by the extension of filename.
// Every definition is validated, so a nil error means File.Jobs will succeed.
func Decode(ctx context.Context, filename string, data []byte) (*File, error) {
	f := &File{}

	var err error

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		err = yaml.UnmarshalWithOptions(data, f, yaml.DisallowUnknownField())
	case ".hcl":
		err = hclsimple.Decode(filepath.Base(filename), data, evalContext(), f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	if err != nil {
		return nil, errors.Join(ErrDecode, err)
	}

	if _, err := f.RunMode(); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}

	if _, err := f.Jobs(); err != nil {
		return nil, errors.Join(ErrDecode, err)
	}

	ctxlog.Debug(ctx, "decoded definition file", "file", filename, "mode", f.Mode, "commands", len(f.Commands))

	return f, nil
}

// evalContext exposes the caller's environment as the env object.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for k, v := range environ.FromOS() {
		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
