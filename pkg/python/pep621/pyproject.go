// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

// Package pep621 implements PEP 621 -- Storing project metadata in
// pyproject.toml.
//
// Only the [project] table is handled; build-system configuration belongs to
// whichever build backend consumes it.
//
// https://peps.python.org/pep-0621/
package pep621

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Pyproject struct {
	Project *Project `toml:"project"`
}

type Project struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`

	// Readme is either a path string or a {file|text, content-type}
	// table; see interpretReadme.
	Readme any `toml:"readme"`

	RequiresPython       string              `toml:"requires-python"`
	Authors              []Contributor       `toml:"authors"`
	Classifiers          []string            `toml:"classifiers"`
	Dependencies         []string            `toml:"dependencies"`
	OptionalDependencies map[string][]string `toml:"optional-dependencies"`
}

type Contributor struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Readme is the normalized form of a [project] readme value.
type Readme struct {
	File        string // path relative to pyproject.toml; empty if Text is inline
	Text        string
	ContentType string
}

// Parse decodes a pyproject.toml document and returns its [project] table.
// A document without one is an error; this tool has no use for a
// build-system-only pyproject.toml.
func Parse(content []byte) (*Project, error) {
	var doc Pyproject
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("pep621.Parse: %w", err)
	}
	if doc.Project == nil {
		return nil, fmt.Errorf("pep621.Parse: pyproject.toml has no [project] table")
	}
	if doc.Project.Name == "" {
		return nil, fmt.Errorf("pep621.Parse: [project] table has no name")
	}
	return doc.Project, nil
}

// Load reads and parses filename within fsys.
func Load(fsys fs.FS, filename string) (*Project, error) {
	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, err
	}
	proj, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return proj, nil
}

// GetReadme normalizes the readme field.  The result is nil if the project
// declares none.
func (proj *Project) GetReadme() (*Readme, error) {
	switch val := proj.Readme.(type) {
	case nil:
		return nil, nil //nolint:nilnil // "no readme" is not an error
	case string:
		return &Readme{
			File:        val,
			ContentType: contentTypeForFile(val),
		}, nil
	case map[string]any:
		var ret Readme
		for key, v := range val {
			str, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("pep621: readme.%s: expected a string", key)
			}
			switch key {
			case "file":
				ret.File = str
			case "text":
				ret.Text = str
			case "content-type":
				ret.ContentType = str
			default:
				return nil, fmt.Errorf("pep621: readme: unknown key %q", key)
			}
		}
		if (ret.File == "") == (ret.Text == "") {
			return nil, fmt.Errorf("pep621: readme: exactly one of file and text is required")
		}
		if ret.ContentType == "" {
			return nil, fmt.Errorf("pep621: readme: content-type is required in table form")
		}
		return &ret, nil
	default:
		return nil, fmt.Errorf("pep621: readme: expected a string or a table, got %T", proj.Readme)
	}
}

func contentTypeForFile(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".md":
		return "text/markdown"
	case ".rst":
		return "text/x-rst"
	default:
		return "text/plain"
	}
}

// AuthorString renders the authors list the way setuptools folds it in to the
// single Author metadata field.
func (proj *Project) AuthorString() string {
	names := make([]string, 0, len(proj.Authors))
	for _, author := range proj.Authors {
		if author.Name != "" {
			names = append(names, author.Name)
		}
	}
	return strings.Join(names, ", ")
}
