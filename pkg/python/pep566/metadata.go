// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

// Package pep566 implements PEP 566 -- Metadata for Python Software Packages 2.1.
//
// Just enough of it to emit the PKG-INFO / METADATA file that setuptools
// would emit for a distribution.
//
// https://peps.python.org/pep-0566/
package pep566

import (
	"fmt"
	"io"
	"strings"

	"github.com/sumit-90/pydist/pkg/python/pep440"
)

const MetadataVersion = "2.1"

// Metadata is the one-shot metadata record for a distribution.  It is
// constructed once at assembly time and never mutated.
type Metadata struct {
	Name    string
	Version pep440.Version

	Summary string
	Author  string
	License string

	Classifiers    []string
	RequiresPython string

	// RequiresDist holds the mandatory dependency specifiers plus the
	// optional ones qualified with an `extra == "..."` marker.
	RequiresDist  []string
	ProvidesExtra []string

	// Description is the long-form description, emitted as the message
	// body.
	Description            string
	DescriptionContentType string
}

// Validate checks the fields that the rest of the toolchain depends on being
// well-formed.
func (md *Metadata) Validate() error {
	if md.Name == "" {
		return fmt.Errorf("pep566: metadata has no Name")
	}
	if len(md.Version.Release) == 0 {
		return fmt.Errorf("pep566: metadata has no Version")
	}
	if md.RequiresPython != "" {
		if _, err := pep440.ParseSpecifier(md.RequiresPython); err != nil {
			return fmt.Errorf("pep566: Requires-Python: %w", err)
		}
	}
	// Everything emitted as a header must stay on one line; only the
	// Description goes in the message body.
	headerVals := []string{
		md.Name, md.Summary, md.Author, md.License,
		md.RequiresPython, md.DescriptionContentType,
	}
	headerVals = append(headerVals, md.Classifiers...)
	headerVals = append(headerVals, md.RequiresDist...)
	headerVals = append(headerVals, md.ProvidesExtra...)
	for _, val := range headerVals {
		if strings.ContainsAny(val, "\r\n") {
			return fmt.Errorf("pep566: metadata field contains a newline: %q", val)
		}
	}
	return nil
}

// WriteTo emits the metadata as an RFC 822 style header block followed by the
// description body, the on-disk format of PKG-INFO and METADATA files.
func (md *Metadata) WriteTo(w io.Writer) error {
	if err := md.Validate(); err != nil {
		return err
	}

	var ret strings.Builder
	header := func(key, val string) {
		if val != "" {
			fmt.Fprintf(&ret, "%s: %s\n", key, val)
		}
	}

	header("Metadata-Version", MetadataVersion)
	header("Name", md.Name)
	header("Version", md.Version.String())
	header("Summary", md.Summary)
	header("Author", md.Author)
	header("License", md.License)
	for _, classifier := range md.Classifiers {
		header("Classifier", classifier)
	}
	header("Requires-Python", md.RequiresPython)
	for _, extra := range md.ProvidesExtra {
		header("Provides-Extra", extra)
	}
	for _, dist := range md.RequiresDist {
		header("Requires-Dist", dist)
	}
	header("Description-Content-Type", md.DescriptionContentType)
	if md.Description != "" {
		ret.WriteString("\n")
		ret.WriteString(md.Description)
		if !strings.HasSuffix(md.Description, "\n") {
			ret.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, ret.String())
	return err
}

// ExtraRequirement qualifies a dependency specifier with the environment
// marker that limits it to an extras group:
//
//	ExtraRequirement("pytest", "dev") == `pytest; extra == "dev"`
func ExtraRequirement(specifier, extra string) string {
	if semi := strings.Index(specifier, ";"); semi >= 0 {
		marker := strings.TrimSpace(specifier[semi+1:])
		base := strings.TrimSpace(specifier[:semi])
		return fmt.Sprintf(`%s; (%s) and extra == %q`, base, marker, extra)
	}
	return fmt.Sprintf(`%s; extra == %q`, specifier, extra)
}
