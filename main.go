// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

// Command pydist deals with Python distribution metadata: requirements
// manifests, package discovery, and the PKG-INFO that a packaging toolchain
// consumes.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sumit-90/pydist/pkg/cliutil"
)

var argparser = &cobra.Command{
	Use:   "pydist {[flags]|SUBCOMMAND...}",
	Short: "Work with Python distribution metadata",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,

	SilenceErrors: true, // main() will handle this after .ExecuteContext() returns
	SilenceUsage:  true, // our FlagErrorFunc will handle it
}

func init() {
	argparser.SetFlagErrorFunc(cliutil.FlagErrorFunc)
	argparser.SetHelpTemplate(cliutil.HelpTemplate)
}

func main() {
	ctx := context.Background()

	if err := argparser.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(argparser.ErrOrStderr(), "%s: error: %v\n", argparser.CommandPath(), err)
		os.Exit(1)
	}
}
