// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package setup

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

var reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FindPackages walks the project tree and returns the dotted names of the
// importable packages it contains, mimicking setuptools.find_packages: a
// directory is a package if it and every directory above it contain an
// __init__.py and are named by valid Python identifiers.  Packages whose
// dotted name matches any of the exclude globs are skipped; matching is on
// the full dotted name, so "tests*" drops both "tests" and "tests.unit".
//
// The walk is lexical, so the result is deterministically sorted.
func FindPackages(fsys fs.FS, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("setup.FindPackages: bad exclude pattern %q: %w", pattern, err)
		}
	}

	ret := []string{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || p == "." {
			return nil
		}
		if !reIdentifier.MatchString(d.Name()) {
			return fs.SkipDir
		}
		if _, err := fs.Stat(fsys, path.Join(p, "__init__.py")); err != nil {
			// Not a package; nothing below it can be one either.
			return fs.SkipDir
		}
		name := strings.ReplaceAll(p, "/", ".")
		for _, pattern := range exclude {
			if ok, _ := path.Match(pattern, name); ok {
				// Excluded, but keep walking: excluding "tests"
				// does not exclude "tests.unit" unless the
				// pattern matches it too.
				return nil
			}
		}
		ret = append(ret, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
