// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/subprocess/internal/ctxlog"
	"github.com/matt-FFFFFF/subprocess/internal/definition"
)

// ErrGetDefinitionFile is returned when a definition file cannot be fetched.
var ErrGetDefinitionFile = errors.New("failed to get definition file")

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	goGetterForcedFile    = "file::"
	minimumGetterParts    = 3 // scheme, host and path
)

// fetchDefinition returns the decoded definition file at url.
//
// Local files are loaded in place, so relative working directories resolve against the
// directory of the file. Remote files are downloaded with go-getter into a temporary
// directory that is removed again, their relative working directories resolve against
// the current directory.
func fetchDefinition(ctx context.Context, url string) (*definition.File, error) {
	if url == "" {
		return nil, ErrGetDefinitionFile
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetDefinitionFile, err)
	}

	local, err := getter.Detect(&getter.Request{Src: url, Pwd: wd}, &getter.FileGetter{})
	if err != nil {
		return nil, errors.Join(ErrGetDefinitionFile, err)
	}

	if local {
		path := strings.TrimPrefix(url, goGetterForcedFile)
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}

		ctxlog.Debug(ctx, "loading local definition file", "path", path)

		f, err := definition.Load(ctx, path)
		if errors.Is(err, definition.ErrReadFile) {
			return nil, errors.Join(ErrGetDefinitionFile, err)
		}

		return f, err //nolint:wrapcheck
	}

	data, fileName, err := download(ctx, url, wd)
	if err != nil {
		return nil, err
	}

	return definition.Decode(ctx, fileName, data) //nolint:wrapcheck
}

// download fetches the directory holding the file named by a remote getter URL
// and returns the file content and base name.
// go-getter fetches directories, hence the split (https://github.com/hashicorp/go-getter/issues/98).
func download(ctx context.Context, url, wd string) ([]byte, string, error) {
	src, fileName := splitFileNameFromGetterURL(url)
	if src == "" || fileName == "" {
		return nil, "", fmt.Errorf("%w: invalid URL format: %s", ErrGetDefinitionFile, url)
	}

	tmpDir, err := os.MkdirTemp("", "subprocess-getter-*")
	if err != nil {
		return nil, "", errors.Join(ErrGetDefinitionFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	ctxlog.Debug(ctx, "downloading definition file", "src", src, "file", fileName)

	client := getter.Client{
		DisableSymlinks: true,
	}

	res, err := client.Get(ctx, &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	})
	if err != nil {
		return nil, "", errors.Join(ErrGetDefinitionFile, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, "", errors.Join(ErrGetDefinitionFile, err)
	}

	return data, fileName, nil
}

// splitFileNameFromGetterURL returns the getter URL of the directory holding the file, and the file name.
// A ref query parameter is moved to the end of the directory URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	var ref string

	if before, after, found := strings.Cut(last, goGetterRefSeparator); found {
		last, ref = before, strings.ReplaceAll(after, goGetterRefSeparator, "")
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)

	if dir := filepath.Dir(last); dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	newURL := strings.Join(parts, goGetterPathSeparator)
	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
