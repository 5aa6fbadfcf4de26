// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/bureau-foundation/bureau-expand/cmd/bureau-expand/cli"
	"github.com/bureau-foundation/bureau-expand/lib/version"
)

func versionCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "bureau-expand version",
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			fmt.Fprintf(env.stdout, "bureau-expand %s\n", version.Full())
			return nil
		},
	}
}
