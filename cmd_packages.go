// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/sumit-90/pydist/pkg/cliutil"
)

var argparserPackages = &cobra.Command{
	Use:   "packages {[flags]|SUBCOMMAND...}",
	Short: "Work with Python package trees",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserPackages)
}
