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
	"github.com/sumit-90/pydist/pkg/python/pep621"
	"github.com/sumit-90/pydist/pkg/setup"
)

func init() {
	var flagDescriptor string
	var flagPyproject string
	var flagSetupCfg string
	flagOutput := cliutil.NewEnumValue("pkg-info", "pkg-info", "yaml")
	cmd := &cobra.Command{
		Use:   "build [flags] [PROJECT_DIR] >PKG-INFO",
		Short: "Assemble a project's distribution metadata",
		Long: "Assemble the distribution metadata for the project in PROJECT_DIR " +
			"(default \".\"): load the descriptor, read the readme and the " +
			"requirements manifest, discover the importable packages, and write the " +
			"result to stdout as a PKG-INFO document." +
			"\n\n" +
			"The descriptor is a setup.yaml file mirroring the arguments of a " +
			"setuptools.setup call; pass --pyproject to read a PEP 621 " +
			"pyproject.toml [project] table, or --setup-cfg to read a setuptools " +
			"setup.cfg file, instead.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			projectDir := "."
			if len(args) > 0 {
				projectDir = args[0]
			}
			fsys := os.DirFS(projectDir)

			if flagPyproject != "" && flagSetupCfg != "" {
				return fmt.Errorf("--pyproject and --setup-cfg are mutually exclusive")
			}
			var descriptor *setup.Descriptor
			switch {
			case flagPyproject != "":
				proj, err := pep621.Load(fsys, flagPyproject)
				if err != nil {
					return err
				}
				descriptor, err = setup.FromPyproject(proj)
				if err != nil {
					return err
				}
			case flagSetupCfg != "":
				var err error
				descriptor, err = setup.LoadSetupCfg(fsys, flagSetupCfg)
				if err != nil {
					return err
				}
			default:
				var err error
				descriptor, err = setup.LoadDescriptor(fsys, flagDescriptor)
				if err != nil {
					return err
				}
			}

			dist, err := setup.Assemble(fsys, descriptor)
			if err != nil {
				return err
			}

			switch flagOutput.Value {
			case "yaml":
				out := struct {
					Name     string
					Version  string
					Packages []string
					Requires []string `yaml:",omitempty"`
					Extras   []string `yaml:",omitempty"`
				}{
					Name:     dist.Metadata.Name,
					Version:  dist.Metadata.Version.String(),
					Packages: dist.Packages,
					Requires: dist.Metadata.RequiresDist,
					Extras:   dist.Metadata.ProvidesExtra,
				}
				bs, err := yaml.Marshal(out)
				if err != nil {
					return err
				}
				if _, err := os.Stdout.Write(bs); err != nil {
					return err
				}
			default:
				if err := dist.Metadata.WriteTo(os.Stdout); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagDescriptor, "descriptor", "setup.yaml",
		"Read the descriptor from `IN_YAML_FILE` within the project")
	cmd.Flags().StringVar(&flagPyproject, "pyproject", "",
		"Read a PEP 621 `IN_TOML_FILE` within the project instead of a descriptor")
	cmd.Flags().StringVar(&flagSetupCfg, "setup-cfg", "",
		"Read a setuptools `IN_CFG_FILE` within the project instead of a descriptor")
	cmd.Flags().VarP(flagOutput, "output", "o",
		"Output format")

	argparserMetadata.AddCommand(cmd)
}
