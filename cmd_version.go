// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sumit-90/pydist/pkg/cliutil"
	"github.com/sumit-90/pydist/pkg/python/pep440"
)

var argparserVersion = &cobra.Command{
	Use:   "version {[flags]|SUBCOMMAND...}",
	Short: "Work with PEP 440 version identifiers",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserVersion)

	argparserVersion.AddCommand(&cobra.Command{
		Use:   "normalize VERSION",
		Short: "Print the canonical spelling of a version",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			ver, err := pep440.ParseVersion(args[0])
			if err != nil {
				return err
			}
			fmt.Println(ver)
			return nil
		},
	})

	argparserVersion.AddCommand(&cobra.Command{
		Use:   "compare VERSION_A VERSION_B",
		Short: "Compare two versions, printing \"<\", \"=\", or \">\"",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(flags *cobra.Command, args []string) error {
			a, err := pep440.ParseVersion(args[0])
			if err != nil {
				return err
			}
			b, err := pep440.ParseVersion(args[1])
			if err != nil {
				return err
			}
			switch d := a.Cmp(*b); {
			case d < 0:
				fmt.Println("<")
			case d > 0:
				fmt.Println(">")
			default:
				fmt.Println("=")
			}
			return nil
		},
	})

	argparserVersion.AddCommand(&cobra.Command{
		Use:   "match SPECIFIER VERSION",
		Short: "Check a version against a specifier",
		Long: "Check whether VERSION satisfies SPECIFIER (e.g. '>=3.13' or " +
			"'~=0.9,!=0.9.3').  Exits 0 if it matches and 1 if it does not.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(flags *cobra.Command, args []string) error {
			spec, err := pep440.ParseSpecifier(args[0])
			if err != nil {
				return err
			}
			ver, err := pep440.ParseVersion(args[1])
			if err != nil {
				return err
			}
			if !spec.Match(*ver) {
				return fmt.Errorf("version %q does not match specifier %q", ver, spec)
			}
			fmt.Println("ok")
			return nil
		},
	})
}
