// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package cliutil

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// GetTerminalWidth returns the width to wrap help text to; 0 means "don't
// wrap".
func GetTerminalWidth() int {
	// Obey COLUMNS if the shell or user sets it.
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil {
		return cols
	}

	// Otherwise detect the size of stdout, since stdout is where the help
	// text goes.
	if cols, _, err := term.GetSize(1); err == nil {
		return cols
	}

	if term.IsTerminal(1) {
		return 80
	}

	return 0
}
