// Copyright 2026 The TREX-GO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command trexgo drives a watershed hydraulic-sediment simulation from a
// TOML project file, mirroring gofem's main.go flag/recover structure but
// using a github.com/spf13/cobra command tree in place of the standard
// library's flag package, per SPEC_FULL.md's CLI expansion.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hydroinformatics/trexgo/internal/config"
	"github.com/hydroinformatics/trexgo/internal/diag"
)

// version is set by the build system via -ldflags; left at "dev" otherwise.
var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "trexgo",
		Short: "Explicit coupled hydraulic-sediment watershed solver",
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("trexgo v%s\n", version)
		},
	}
}

func newRunCmd() *cobra.Command {
	var projectFile string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation from a project file",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			log := newLogger(verbose)

			defer func() {
				if r := recover(); r != nil {
					log.Errorf("fatal: %v", r)
					err = fmt.Errorf("trexgo: %v", r)
				}
			}()

			if projectFile == "" {
				return diag.Err(diag.ConfigurationError, "please provide --project FILE")
			}

			project, err := config.Load(projectFile)
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"rows": project.NumRows,
				"cols": project.NumCols,
				"dt":   project.Dt,
				"tf":   project.Tf,
			}).Info("project loaded")

			return runProject(project, log)
		},
	}

	cmd.Flags().StringVar(&projectFile, "project", "", "path to the TOML project file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	return cmd
}

func newLogger(verbose bool) *logrus.Entry {
	l := logrus.New()
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(l)
}
