// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

// Package setup assembles distribution metadata from a project tree, doing
// standalone what a setup.py call to setuptools.setup would do.
package setup

import (
	"fmt"
	"io/fs"

	"sigs.k8s.io/yaml"

	"github.com/sumit-90/pydist/pkg/python/pep621"
)

// Descriptor mirrors the keyword arguments of a setuptools.setup call.  It is
// normally loaded from a setup.yaml file next to the project sources:
//
//	name: document_portal
//	version: 0.1.0
//	author: Sumit Umbardand
//	description: An intelligent document analysis and comparison system.
//	readme: README.md
//	requirements: requirements.txt
//	extras:
//	  dev: [pytest, pylint, ipykernel]
//	classifiers:
//	  - "Programming Language :: Python :: 3.13"
//	pythonRequires: ">=3.13"
type Descriptor struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Author      string `json:"author"`
	Description string `json:"description"`
	License     string `json:"license,omitempty"`

	// Readme names the long-description document; its content type is
	// inferred from the file extension unless ReadmeContentType is set.
	// LongDescription carries the text inline instead; at most one of the
	// two may be set.
	Readme            string `json:"readme,omitempty"`
	ReadmeContentType string `json:"readmeContentType,omitempty"`
	LongDescription   string `json:"longDescription,omitempty"`

	// Requirements names the manifest whose specifiers become the
	// mandatory dependencies; Dependencies lists specifiers inline.
	// Both may be set, in which case the manifest's specifiers follow
	// the inline ones.
	Requirements string   `json:"requirements,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`

	// Extras maps optional dependency group names to their specifiers.
	Extras map[string][]string `json:"extras,omitempty"`

	Classifiers    []string `json:"classifiers,omitempty"`
	PythonRequires string   `json:"pythonRequires,omitempty"`

	// ExcludePackages lists glob patterns of dotted package names that
	// package discovery skips, as in find_packages(exclude=...).
	ExcludePackages []string `json:"excludePackages,omitempty"`
}

// DefaultExcludes matches setup.py's find_packages(exclude=["tests*",
// "examples*"]).
//
//nolint:gochecknoglobals // Would be 'const'.
var DefaultExcludes = []string{"tests*", "examples*"}

// LoadDescriptor reads a setup.yaml descriptor.  Unknown keys are an error; a
// typoed key silently dropping metadata would be worse.
func LoadDescriptor(fsys fs.FS, filename string) (*Descriptor, error) {
	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, err
	}
	var ret Descriptor
	if err := yaml.UnmarshalStrict(content, &ret); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if ret.Name == "" {
		return nil, fmt.Errorf("%s: descriptor has no name", filename)
	}
	if ret.Readme != "" && ret.LongDescription != "" {
		return nil, fmt.Errorf("%s: readme and longDescription are mutually exclusive", filename)
	}
	// setup.py's defaults
	if ret.Readme == "" && ret.LongDescription == "" {
		ret.Readme = "README.md"
	}
	if ret.Requirements == "" && ret.Dependencies == nil {
		ret.Requirements = "requirements.txt"
	}
	if ret.ExcludePackages == nil {
		ret.ExcludePackages = DefaultExcludes
	}
	return &ret, nil
}

// FromPyproject converts a PEP 621 [project] table to the equivalent
// descriptor.  PEP 621 declares dependencies inline rather than via a
// manifest, so the result has Dependencies populated and no Requirements
// file.
func FromPyproject(proj *pep621.Project) (*Descriptor, error) {
	readme, err := proj.GetReadme()
	if err != nil {
		return nil, err
	}
	ret := Descriptor{
		Name:            proj.Name,
		Version:         proj.Version,
		Author:          proj.AuthorString(),
		Description:     proj.Description,
		Dependencies:    proj.Dependencies,
		Extras:          proj.OptionalDependencies,
		Classifiers:     proj.Classifiers,
		PythonRequires:  proj.RequiresPython,
		ExcludePackages: DefaultExcludes,
	}
	if readme != nil {
		ret.Readme = readme.File
		ret.LongDescription = readme.Text
		ret.ReadmeContentType = readme.ContentType
	}
	return &ret, nil
}
