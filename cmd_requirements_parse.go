// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/sumit-90/pydist/pkg/cliutil"
	"github.com/sumit-90/pydist/pkg/python/pip"
)

func init() {
	flagOutput := cliutil.NewEnumValue("text", "text", "yaml")
	cmd := &cobra.Command{
		Use:   "parse [flags] IN_REQUIREMENTSFILE",
		Short: "Parse a requirements manifest in to a clean specifier list",
		Long: "Read a requirements manifest, dropping blank lines, \"#\" comments, and " +
			"\"-e\" editable-install directives, and print the dependency specifiers " +
			"that remain, in their original order.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			specifiers, err := pip.ReadRequirements(args[0])
			if err != nil {
				return err
			}
			if flagOutput.Value == "yaml" {
				bs, err := yaml.Marshal(specifiers)
				if err != nil {
					return err
				}
				if _, err := os.Stdout.Write(bs); err != nil {
					return err
				}
				return nil
			}
			for _, specifier := range specifiers {
				fmt.Println(specifier)
			}
			return nil
		},
	}
	cmd.Flags().VarP(flagOutput, "output", "o",
		"Output format")

	argparserRequirements.AddCommand(cmd)
}
