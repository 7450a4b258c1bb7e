package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoopdev/ktaga-lab/pkg/config"
	"github.com/hoopdev/ktaga-lab/pkg/display"
	"github.com/hoopdev/ktaga-lab/pkg/style"
)

func newExtrasCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:     "extras",
		Short:   "List the extras groups defined by the manifest",
		Example: `  ktaga-lab extras`,
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

			color := display.DetectColor(os.Stdout)
			for _, group := range m.Groups {
				name := group.Name
				if color {
					name = style.TitleStyle.Render(name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d packages)\n", name, len(group.Members))
				for _, idx := range group.Members {
					req := m.Requirements[idx]
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", req.Name, req.Range.String())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Manifest file (default embedded lab manifest)")

	return cmd
}
