// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package setup

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/sumit-90/pydist/pkg/python/pep440"
	"github.com/sumit-90/pydist/pkg/python/pep566"
	"github.com/sumit-90/pydist/pkg/python/pip"
)

// Distribution is the assembled result: the metadata record handed to the
// packaging toolchain, plus the discovered package list.
type Distribution struct {
	Metadata *pep566.Metadata
	Packages []string
}

// Assemble performs the one-shot metadata construction of a setup.py run:
// parse the version, read the readme, read the requirements manifest,
// discover packages, and fold the extras groups in.  There is no recovery;
// any sub-step failure propagates unchanged and no partial result is
// returned.
func Assemble(fsys fs.FS, d *Descriptor) (*Distribution, error) {
	version, err := pep440.ParseVersion(d.Version)
	if err != nil {
		return nil, fmt.Errorf("setup.Assemble: version: %w", err)
	}

	md := &pep566.Metadata{
		Name:           d.Name,
		Version:        *version,
		Summary:        d.Description,
		Author:         d.Author,
		License:        d.License,
		Classifiers:    d.Classifiers,
		RequiresPython: d.PythonRequires,
	}

	md.Description = d.LongDescription
	md.DescriptionContentType = d.ReadmeContentType
	if d.Readme != "" {
		content, err := fs.ReadFile(fsys, d.Readme)
		if err != nil {
			return nil, err
		}
		md.Description = string(content)
		if md.DescriptionContentType == "" {
			md.DescriptionContentType = contentTypeForFile(d.Readme)
		}
	}

	requires := append([]string(nil), d.Dependencies...)
	if d.Requirements != "" {
		file, err := fsys.Open(d.Requirements)
		if err != nil {
			return nil, err
		}
		fromManifest, parseErr := pip.ParseRequirements(file)
		if closeErr := file.Close(); parseErr == nil {
			parseErr = closeErr
		}
		if parseErr != nil {
			return nil, fmt.Errorf("%s: %w", d.Requirements, parseErr)
		}
		requires = append(requires, fromManifest...)
	}
	md.RequiresDist = requires

	// Extras groups are emitted in sorted order so that output is stable
	// across runs.
	extraNames := make([]string, 0, len(d.Extras))
	for extra := range d.Extras {
		extraNames = append(extraNames, extra)
	}
	sort.Strings(extraNames)
	for _, extra := range extraNames {
		md.ProvidesExtra = append(md.ProvidesExtra, extra)
		for _, specifier := range d.Extras[extra] {
			md.RequiresDist = append(md.RequiresDist,
				pep566.ExtraRequirement(specifier, extra))
		}
	}

	packages, err := FindPackages(fsys, d.ExcludePackages)
	if err != nil {
		return nil, err
	}

	if err := md.Validate(); err != nil {
		return nil, err
	}
	return &Distribution{
		Metadata: md,
		Packages: packages,
	}, nil
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
