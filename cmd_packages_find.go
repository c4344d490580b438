// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sumit-90/pydist/pkg/cliutil"
	"github.com/sumit-90/pydist/pkg/setup"
)

func init() {
	var flagExclude []string
	cmd := &cobra.Command{
		Use:   "find [flags] [PROJECT_DIR]",
		Short: "Discover the importable packages in a project tree",
		Long: "Walk PROJECT_DIR (default \".\") and print the dotted names of the " +
			"Python packages it contains, one per line, the way " +
			"setuptools.find_packages would discover them.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			projectDir := "."
			if len(args) > 0 {
				projectDir = args[0]
			}
			packages, err := setup.FindPackages(os.DirFS(projectDir), flagExclude)
			if err != nil {
				return err
			}
			for _, pkg := range packages {
				fmt.Println(pkg)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&flagExclude, "exclude", setup.DefaultExcludes,
		"Skip packages whose dotted name matches `GLOB` (repeatable)")

	argparserPackages.AddCommand(cmd)
}
