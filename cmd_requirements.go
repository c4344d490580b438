// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/sumit-90/pydist/pkg/cliutil"
)

var argparserRequirements = &cobra.Command{
	Use:   "requirements {[flags]|SUBCOMMAND...}",
	Short: "Work with requirements manifests",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserRequirements)
}
