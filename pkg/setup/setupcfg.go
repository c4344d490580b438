// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package setup

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/sumit-90/pydist/pkg/python/setupcfg"
)

// FromSetupCfg converts the [metadata] and [options] sections of a setup.cfg
// file to the equivalent descriptor.
//
// Directives that need to execute the project's code (`attr:` versions,
// non-`find:` package lists) are rejected rather than guessed at.
func FromSetupCfg(cfg setupcfg.File) (*Descriptor, error) {
	metadata := cfg.Section("metadata")
	options := cfg.Section("options")

	ret := Descriptor{
		Name:              metadata["name"],
		Version:           metadata["version"],
		Author:            metadata["author"],
		Description:       metadata["description"],
		License:           metadata["license"],
		ReadmeContentType: metadata["long_description_content_type"],
		Dependencies:      options.List("install_requires"),
		Classifiers:       metadata.List("classifiers"),
		PythonRequires:    options["python_requires"],
		ExcludePackages:   DefaultExcludes,
	}
	if ret.Name == "" {
		return nil, fmt.Errorf("setup.cfg: [metadata] has no name")
	}
	if strings.HasPrefix(ret.Version, "attr:") {
		return nil, fmt.Errorf("setup.cfg: attr: versions are not supported: %q", ret.Version)
	}

	if longDesc, ok := metadata["long_description"]; ok {
		if file, isFile := strings.CutPrefix(longDesc, "file:"); isFile {
			files := strings.Split(file, ",")
			if len(files) > 1 {
				return nil, fmt.Errorf("setup.cfg: multiple long_description files: %q", longDesc)
			}
			ret.Readme = strings.TrimSpace(files[0])
		} else {
			ret.LongDescription = longDesc
		}
	}

	if packages, ok := options["packages"]; ok && packages != "find:" {
		return nil, fmt.Errorf("setup.cfg: only \"packages = find:\" is supported, got %q", packages)
	}
	if find := cfg.Section("options.packages.find"); find != nil {
		if exclude := find.List("exclude"); exclude != nil {
			ret.ExcludePackages = exclude
		}
	}

	if extras := cfg.Section("options.extras_require"); extras != nil {
		ret.Extras = make(map[string][]string, len(extras))
		for group := range extras {
			ret.Extras[group] = extras.List(group)
		}
	}

	return &ret, nil
}

// LoadSetupCfg reads a setup.cfg file and converts it to a descriptor.
func LoadSetupCfg(fsys fs.FS, filename string) (*Descriptor, error) {
	cfg, err := setupcfg.Load(fsys, filename)
	if err != nil {
		return nil, err
	}
	return FromSetupCfg(cfg)
}
