// Copyright (C) 2024  Sumit Umbardand
//
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/sumit-90/pydist/pkg/cliutil"
	"github.com/sumit-90/pydist/pkg/python/pep440"
	"github.com/sumit-90/pydist/pkg/python/pep503"
	"github.com/sumit-90/pydist/pkg/python/pip"
)

func init() {
	var flagIndexServer string
	var flagPython string
	cmd := &cobra.Command{
		Use:   "verify [flags] IN_REQUIREMENTSFILE",
		Short: "Check a requirements manifest against a package index",
		Long: "Check that every specifier in a requirements manifest names a project " +
			"that the package index serves, and that the index has at least one file " +
			"whose release version satisfies the specifier's version clauses.  Direct " +
			"references (\"name @ url\") are skipped, since the index " +
			"has no say about them." +
			"\n\n" +
			"LIMITATION: this consults the index's file listing only; it does not " +
			"resolve a full dependency set the way pip does.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			ctx := flags.Context()

			specifiers, err := pip.ReadRequirements(args[0])
			if err != nil {
				return err
			}

			client := pep503.Client{
				BaseURL: flagIndexServer,
			}
			if flagPython != "" {
				python, err := pep440.ParseVersion(flagPython)
				if err != nil {
					return err
				}
				client.Python = python
			}

			bad := 0
			for _, specifier := range specifiers {
				req, err := pip.ParseRequirement(specifier)
				if err != nil {
					dlog.Errorf(ctx, "%v", err)
					bad++
					continue
				}
				if req.URL != "" {
					dlog.Infof(ctx, "skipping direct reference %q", specifier)
					continue
				}
				links, err := client.ListProjectFiles(ctx, req.Name)
				if err != nil {
					var httpErr *pep503.HTTPError
					if errors.As(err, &httpErr) {
						dlog.Errorf(ctx, "%s: index does not serve project %q (%v)",
							specifier, pep503.Normalize(req.Name), httpErr)
						bad++
						continue
					}
					return err
				}
				if len(links) == 0 {
					dlog.Errorf(ctx, "%s: index has no files for project %q",
						specifier, pep503.Normalize(req.Name))
					bad++
					continue
				}
				if len(req.Specifier) > 0 {
					satisfying := pep503.Satisfying(links, req.Name, req.Specifier)
					if len(satisfying) == 0 {
						dlog.Errorf(ctx, "%s: index has no release matching %q",
							specifier, req.Specifier)
						bad++
						continue
					}
					dlog.Infof(ctx, "%s: ok (%d of %d files match)",
						specifier, len(satisfying), len(links))
					continue
				}
				dlog.Infof(ctx, "%s: ok (%d files)", specifier, len(links))
			}
			if bad > 0 {
				return fmt.Errorf("%d of %d specifiers failed verification", bad, len(specifiers))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flagIndexServer, "index-server", pep503.PyPIBaseURL,
		"Check against `INDEX_URL` rather than the Python Package Index")
	cmd.Flags().StringVar(&flagPython, "python", "",
		"Only count files that are installable on Python `VERSION`")

	argparserRequirements.AddCommand(cmd)
}
