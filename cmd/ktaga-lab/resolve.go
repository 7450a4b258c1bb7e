package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hoopdev/ktaga-lab/pkg/config"
	"github.com/hoopdev/ktaga-lab/pkg/display"
	"github.com/hoopdev/ktaga-lab/pkg/resolver"
)

func newResolveCmd() *cobra.Command {
	var (
		manifestPath string
		extras       []string
		requirements bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the package set for a profile without building a plan",
		Example: `  ktaga-lab resolve --extra zurich
  ktaga-lab resolve --extra full --requirements`,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("manifest") {
				overrides["manifest.path"] = manifestPath
			}
			cfg, err := config.Load(configFile, overrides)
			if err != nil {
				return err
			}

			m, err := loadManifest(cfg)
			if err != nil {
				return err
			}

			env, err := resolver.Resolve(m, extras)
			if err != nil {
				return err
			}

			if requirements {
				for _, pkg := range env.Packages {
					spec := pkg.Name
					if !pkg.Range.Any() {
						spec += pkg.Range.String()
					}
					fmt.Fprintln(cmd.OutOrStdout(), spec)
				}
				return nil
			}

			renderer := display.NewRenderer(display.DetectColor(os.Stdout))
			if len(env.Profile) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Resolved %d packages for profile %s\n",
					len(env.Packages), strings.Join(env.Profile, ", "))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Resolved %d packages (base install)\n", len(env.Packages))
			}
			fmt.Fprint(cmd.OutOrStdout(), renderer.RenderPackageList(env.Packages))
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Manifest file (default embedded lab manifest)")
	cmd.Flags().StringArrayVar(&extras, "extra", nil, "Extras group to activate (repeatable)")
	cmd.Flags().BoolVar(&requirements, "requirements", false, "Print bare pip-style requirement lines")

	return cmd
}
