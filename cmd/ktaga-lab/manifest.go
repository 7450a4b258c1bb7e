package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoopdev/ktaga-lab/pkg/manifest"
)

func newManifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Print the embedded default manifest",
		Long: `Print the embedded default manifest to stdout. Redirect it to a file
to use as the starting point for a customized manifest:

  ktaga-lab manifest > my-lab.toml
  ktaga-lab plan --manifest my-lab.toml`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), manifest.DefaultManifestContent())
		},
	}
}
