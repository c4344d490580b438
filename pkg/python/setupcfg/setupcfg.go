// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

// Package setupcfg reads setuptools setup.cfg files.  The syntax is whatever
// `configparser.py` accepts with default settings, which is what setuptools
// feeds the file through; interpolation is not performed because setuptools
// disables it.
//
// https://setuptools.pypa.io/en/latest/userguide/declarative_config.html
package setupcfg

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"unicode"
)

// A File maps section names to sections, and a Section maps lowercased option
// names to raw string values.  Multi-line values keep their newlines.
type File map[string]Section

type Section map[string]string

const (
	delimiters      = "=:"
	commentPrefixes = "#;"
)

// Parse reads a setup.cfg document.  Duplicate sections and duplicate options
// within a section are errors, matching configparser's strict mode.
func Parse(fp io.Reader) (File, error) {
	file := make(File)

	var (
		curIndentLevel int
		curSection     Section
		curKey         string
		curVal         []string
	)

	flushKV := func() {
		if curVal != nil {
			curSection[curKey] = strings.TrimRight(strings.Join(curVal, "\n"), "\n")
			curKey = ""
			curVal = nil
		}
	}

	fpLines := bufio.NewReader(fp)
	lineno := 0
	keepGoing := true
	for keepGoing {
		line, err := fpLines.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			keepGoing = false
		}
		lineno++

		value := strings.TrimSpace(line)
		isComment := value != "" && strings.ContainsRune(commentPrefixes, rune(value[0]))
		if isComment {
			value = ""
		}
		if value == "" {
			// An empty line continues a multi-line value; a comment
			// line does not.
			if curVal != nil && !isComment {
				curVal = append(curVal, "")
			}
			continue
		}

		lineIndentLevel := 0
		for i, r := range line {
			if !unicode.IsSpace(r) {
				lineIndentLevel = i
				break
			}
		}
		switch {
		case curVal != nil && lineIndentLevel > curIndentLevel:
			// continuation line
			curVal = append(curVal, value)
		case strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]"):
			// section header
			flushKV()
			curIndentLevel = lineIndentLevel
			sectName := strings.TrimSuffix(strings.TrimPrefix(value, "["), "]")
			if _, exists := file[sectName]; exists {
				return nil, fmt.Errorf("line %d: duplicate section name %q", lineno, sectName)
			}
			file[sectName] = make(Section)
			curSection = file[sectName]
		default:
			// start of a k/v pair
			flushKV()
			curIndentLevel = lineIndentLevel
			if curSection == nil {
				return nil, fmt.Errorf("line %d: no section header", lineno)
			}
			sepPos := strings.IndexAny(value, delimiters)
			if sepPos < 0 {
				return nil, fmt.Errorf("line %d: invalid line: %q", lineno, value)
			}
			curKey = strings.ToLower(strings.TrimSpace(value[:sepPos]))
			curVal = []string{
				strings.TrimSpace(value[sepPos+1:]),
			}
			if _, exists := curSection[curKey]; exists {
				return nil, fmt.Errorf("line %d: duplicate option name %q", lineno, curKey)
			}
		}
	}
	flushKV()

	return file, nil
}

// Load reads and parses a setup.cfg file from a filesystem.
func Load(fsys fs.FS, filename string) (File, error) {
	fp, err := fsys.Open(filename)
	if err != nil {
		return nil, err
	}
	file, err := Parse(fp)
	if err != nil {
		_ = fp.Close()
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if err := fp.Close(); err != nil {
		return nil, err
	}
	return file, nil
}

// Section returns the named section, or nil if it does not exist.  Looking up
// options in a nil Section is safe and finds nothing.
func (f File) Section(name string) Section {
	return f[name]
}

// List splits an option's value the way setuptools splits list-valued
// options: on newlines if the value spans lines, on commas otherwise.
func (s Section) List(key string) []string {
	val, ok := s[key]
	if !ok {
		return nil
	}
	sep := ","
	if strings.Contains(val, "\n") {
		sep = "\n"
	}
	var ret []string
	for _, item := range strings.Split(val, sep) {
		if item = strings.TrimSpace(item); item != "" {
			ret = append(ret, item)
		}
	}
	return ret
}
