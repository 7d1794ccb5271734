// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
)

// ErrGetConfigFile is returned when the configuration URL cannot be fetched.
var ErrGetConfigFile = errors.New("failed to get config file")

// getURL downloads url with go-getter and returns the file's bytes and base
// name. Nothing is left behind on disk.
func getURL(ctx context.Context, url string) ([]byte, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	src, name, err := getterSource(url, cwd)
	if err != nil {
		return nil, "", err
	}

	dir, err := os.MkdirTemp("", "goblocks-getter-*")
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(dir) //nolint:errcheck

	gc := getter.Client{DisableSymlinks: true}

	got, err := gc.Get(ctx, &getter.Request{
		Src:     src,
		Dst:     filepath.Join(dir, "cfg"),
		Pwd:     cwd,
		GetMode: getter.ModeDir,
	})
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	body, err := os.ReadFile(filepath.Join(got.Dst, name))
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	return body, name, nil
}

// getterSource returns the directory go-getter should download and the name
// of the configuration file inside it. go-getter cannot fetch a single file
// in directory mode, see https://github.com/hashicorp/go-getter/issues/98.
func getterSource(url, cwd string) (string, string, error) {
	if url == "" {
		return "", "", ErrGetConfigFile
	}

	local, err := getter.Detect(&getter.Request{Src: url, Pwd: cwd}, &getter.FileGetter{})
	if err != nil {
		return "", "", errors.Join(ErrGetConfigFile, err)
	}

	if local {
		return filepath.Dir(url), filepath.Base(url), nil
	}

	src, name := splitFileNameFromGetterURL(url)
	if src == "" || name == "" {
		return "", "", fmt.Errorf("%w: invalid URL format: %s", ErrGetConfigFile, url)
	}

	return src, name, nil
}

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
)

// splitFileNameFromGetterURL splits a go-getter URL into the URL of the
// directory holding the file and the file name. A ref query is kept on the
// returned URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if before, after, found := strings.Cut(last, goGetterRefSeparator); found {
		ref = strings.ReplaceAll(after, goGetterRefSeparator, "")
		last = before
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
