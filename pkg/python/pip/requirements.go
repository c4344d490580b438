// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

// Package pip mimics the parts of pip's requirements-file handling that a
// packaging descriptor needs.
//
// https://pip.pypa.io/en/stable/reference/requirements-file-format/
package pip

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sumit-90/pydist/pkg/python/pep440"
)

// ParseRequirements reads a requirements manifest, returning the dependency
// specifiers in their original order.  A line is dropped if, after stripping
// surrounding whitespace, it is empty, is a "#" comment, or is a "-e"
// editable-install directive; every other line passes through stripped but
// otherwise unchanged.  No de-duplication is performed.
func ParseRequirements(fp io.Reader) ([]string, error) {
	var ret []string
	scanner := bufio.NewScanner(fp)
	lineno := 0
	for scanner.Scan() {
		lineno++
		if !utf8.Valid(scanner.Bytes()) {
			return nil, fmt.Errorf("pip.ParseRequirements: line %d: invalid UTF-8", lineno)
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-e") {
			continue
		}
		ret = append(ret, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

// ReadRequirements is ParseRequirements applied to a file on disk.
func ReadRequirements(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	specifiers, err := ParseRequirements(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return specifiers, nil
}

// Requirement is a single parsed dependency specifier, in the shape of PEP
// 508 minus environment-marker evaluation.
type Requirement struct {
	Name      string
	Extras    []string
	Specifier pep440.Specifier
	URL       string // set for "name @ url" direct references
	Marker    string // the raw text after ";", if any
}

var reRequirement = regexp.MustCompile(`^\s*` +
	`(?P<name>[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)` +
	`\s*(?:\[(?P<extras>[^\]]*)\])?` +
	`\s*(?P<rest>.*)$`)

// ParseRequirement parses one dependency specifier, e.g.
//
//	langchain[all] >=0.3,<0.4 ; python_version >= "3.10"
func ParseRequirement(str string) (*Requirement, error) {
	// A "#" only starts a comment at the start of the line or after
	// whitespace; otherwise it may be part of a URL fragment.
	for i := 0; i < len(str); i++ {
		if str[i] == '#' && (i == 0 || str[i-1] == ' ' || str[i-1] == '\t') {
			str = str[:i]
			break
		}
	}
	var ret Requirement
	if semi := strings.Index(str, ";"); semi >= 0 {
		ret.Marker = strings.TrimSpace(str[semi+1:])
		str = str[:semi]
	}
	match := reRequirement.FindStringSubmatch(str)
	if match == nil {
		return nil, fmt.Errorf("pip.ParseRequirement: invalid requirement: %q", str)
	}
	ret.Name = match[reRequirement.SubexpIndex("name")]
	if extras := match[reRequirement.SubexpIndex("extras")]; extras != "" {
		for _, extra := range strings.Split(extras, ",") {
			extra = strings.TrimSpace(extra)
			if extra != "" {
				ret.Extras = append(ret.Extras, extra)
			}
		}
	}
	rest := strings.TrimSpace(match[reRequirement.SubexpIndex("rest")])
	switch {
	case rest == "":
		// bare name
	case strings.HasPrefix(rest, "@"):
		ret.URL = strings.TrimSpace(strings.TrimPrefix(rest, "@"))
		if ret.URL == "" {
			return nil, fmt.Errorf("pip.ParseRequirement: empty direct reference: %q", str)
		}
	case strings.HasPrefix(rest, "("):
		if !strings.HasSuffix(rest, ")") {
			return nil, fmt.Errorf("pip.ParseRequirement: unbalanced parens: %q", str)
		}
		rest = strings.TrimSuffix(strings.TrimPrefix(rest, "("), ")")
		fallthrough
	default:
		spec, err := pep440.ParseSpecifier(rest)
		if err != nil {
			return nil, fmt.Errorf("pip.ParseRequirement: %q: %w", str, err)
		}
		ret.Specifier = spec
	}
	return &ret, nil
}
