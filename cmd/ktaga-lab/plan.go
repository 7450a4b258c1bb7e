package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoopdev/ktaga-lab/pkg/checker"
	"github.com/hoopdev/ktaga-lab/pkg/config"
	"github.com/hoopdev/ktaga-lab/pkg/display"
	"github.com/hoopdev/ktaga-lab/pkg/logging"
	"github.com/hoopdev/ktaga-lab/pkg/manifest"
	"github.com/hoopdev/ktaga-lab/pkg/plan"
	"github.com/hoopdev/ktaga-lab/pkg/resolver"
	"github.com/hoopdev/ktaga-lab/pkg/style"
)

// runtimeFlags binds the CLI flags that override config file and
// environment values. Only flags the user actually set are layered on
// top of the other sources.
type runtimeFlags struct {
	manifestPath string
	ip           string
	port         int
	token        string
	workdir      string
	baseImage    string
	allowRoot    bool
	openBrowser  bool
}

func (f *runtimeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.manifestPath, "manifest", "", "Manifest file (default embedded lab manifest)")
	cmd.Flags().StringVar(&f.ip, "ip", "", "Bind address for the notebook server")
	cmd.Flags().IntVar(&f.port, "port", 0, "TCP port for the notebook server")
	cmd.Flags().StringVar(&f.token, "token", "", "Authentication token (empty disables token auth)")
	cmd.Flags().StringVar(&f.workdir, "workdir", "", "Notebook working directory")
	cmd.Flags().StringVar(&f.baseImage, "base-image", "", "Base platform image")
	cmd.Flags().BoolVar(&f.allowRoot, "allow-root", false, "Allow the server to run as root")
	cmd.Flags().BoolVar(&f.openBrowser, "open-browser", false, "Let the server open a browser")
}

func (f *runtimeFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	set := func(flag, key string, value interface{}) {
		if cmd.Flags().Changed(flag) {
			overrides[key] = value
		}
	}
	set("manifest", "manifest.path", f.manifestPath)
	set("ip", "server.ip", f.ip)
	set("port", "server.port", f.port)
	set("token", "server.token", f.token)
	set("workdir", "server.workdir", f.workdir)
	set("base-image", "image.base", f.baseImage)
	set("allow-root", "server.root", f.allowRoot)
	set("open-browser", "server.browser", f.openBrowser)
	return overrides
}

// loadManifest loads the configured manifest file, falling back to the
// embedded default when no path is configured.
func loadManifest(cfg *config.Config) (*manifest.Manifest, error) {
	if cfg.ManifestPath != "" {
		return manifest.Load(cfg.ManifestPath)
	}
	return manifest.Default()
}

func newPlanCmd() *cobra.Command {
	var (
		flags  runtimeFlags
		extras []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build an environment plan for a profile of extras",
		Long: `Plan resolves the manifest for the requested extras groups, validates
the runtime parameters, and prints the environment plan: the final
package set and the JupyterLab launch command. Warnings go to stderr
and never block the plan.`,
		Example: `  ktaga-lab plan --extra zurich --extra kt
  ktaga-lab plan --extra full --ip 0.0.0.0 --token s3cret --format yaml
  ktaga-lab plan --format requirements > requirements.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.plan")
			done := logging.LogOperationStart(logger, "plan")
			defer done()

			outFormat, err := display.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := config.Load(configFile, flags.overrides(cmd))
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

			p, err := plan.Build(env, cfg.Runtime)
			if err != nil {
				return err
			}

			warnings, err := checker.Check(p)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				style.WarningPrinter.Println(w.String())
			}

			logger.Info().
				Strs("profile", p.Profile).
				Int("packages", len(p.Packages)).
				Int("warnings", len(warnings)).
				Msg("Plan accepted")

			renderer := display.NewRenderer(display.DetectColor(os.Stdout))
			out, err := renderer.RenderPlan(p, outFormat)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringArrayVar(&extras, "extra", nil, "Extras group to activate (repeatable)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, yaml, toml, requirements")

	return cmd
}
