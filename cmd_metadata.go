// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/sumit-90/pydist/pkg/cliutil"
)

var argparserMetadata = &cobra.Command{
	Use:   "metadata {[flags]|SUBCOMMAND...}",
	Short: "Assemble and emit distribution metadata",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserMetadata)
}
