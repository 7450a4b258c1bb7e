// Package display renders environment plans and resolved package sets
// for the CLI: a styled text summary for humans, YAML/TOML for the
// build collaborator, and bare requirements lines for the install step.
package display

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hoopdev/ktaga-lab/pkg/plan"
	"github.com/hoopdev/ktaga-lab/pkg/resolver"
	"github.com/hoopdev/ktaga-lab/pkg/style"
)

// Renderer renders plans in the configured format.
type Renderer struct {
	color bool
}

// NewRenderer creates a renderer; color selects styled text output.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color}
}

// Serializable plan view for the structured formats.
type planView struct {
	Profile  []string                          `yaml:"profile" toml:"profile"`
	Image    string                            `yaml:"image" toml:"image"`
	Packages []packageView                     `yaml:"packages" toml:"packages"`
	Server   serverView                        `yaml:"server" toml:"server"`
	Launch   string                            `yaml:"launch" toml:"launch"`
	Settings map[string]map[string]interface{} `yaml:"settings,omitempty" toml:"settings,omitempty"`
}

type packageView struct {
	Name    string   `yaml:"name" toml:"name"`
	Range   string   `yaml:"range" toml:"range"`
	Sources []string `yaml:"sources" toml:"sources"`
}

type serverView struct {
	IP      string `yaml:"ip" toml:"ip"`
	Port    int    `yaml:"port" toml:"port"`
	Auth    bool   `yaml:"auth" toml:"auth"`
	Workdir string `yaml:"workdir" toml:"workdir"`
}

func viewOf(p *plan.Plan) planView {
	v := planView{
		Profile: p.Profile,
		Image:   p.Runtime.BaseImage,
		Server: serverView{
			IP:      p.Runtime.BindAddress,
			Port:    p.Runtime.Port,
			Auth:    p.Runtime.TokenEnabled(),
			Workdir: p.Runtime.WorkingDir,
		},
		Launch:   p.LaunchCommand(),
		Settings: p.Settings,
	}
	for _, pkg := range p.Packages {
		v.Packages = append(v.Packages, packageView{
			Name:    pkg.Name,
			Range:   pkg.Range.String(),
			Sources: pkg.Sources,
		})
	}
	return v
}

// RenderPlan renders the plan in the given format.
func (r *Renderer) RenderPlan(p *plan.Plan, format Format) (string, error) {
	switch format {
	case FormatYAML:
		out, err := yaml.Marshal(viewOf(p))
		if err != nil {
			return "", fmt.Errorf("failed to render plan as YAML: %w", err)
		}
		return string(out), nil
	case FormatTOML:
		out, err := toml.Marshal(viewOf(p))
		if err != nil {
			return "", fmt.Errorf("failed to render plan as TOML: %w", err)
		}
		return string(out), nil
	case FormatRequirements:
		return strings.Join(p.Requirements(), "\n") + "\n", nil
	default:
		return r.renderText(p), nil
	}
}

func (r *Renderer) renderText(p *plan.Plan) string {
	var b strings.Builder

	b.WriteString(r.title("Environment plan") + "\n\n")

	profile := "(base)"
	if len(p.Profile) > 0 {
		profile = strings.Join(p.Profile, ", ")
	}
	b.WriteString(fmt.Sprintf("  profile: %s\n", profile))
	b.WriteString(fmt.Sprintf("  image:   %s\n", p.Runtime.BaseImage))
	auth := "token"
	if !p.Runtime.TokenEnabled() {
		auth = "none"
	}
	b.WriteString(fmt.Sprintf("  server:  %s:%d (auth: %s)\n", p.Runtime.BindAddress, p.Runtime.Port, auth))
	b.WriteString(fmt.Sprintf("  workdir: %s\n\n", p.Runtime.WorkingDir))

	b.WriteString(r.title(fmt.Sprintf("Packages (%d)", len(p.Packages))) + "\n")
	b.WriteString(r.RenderPackageList(p.Packages))

	b.WriteString("\n" + r.title("Launch") + "\n")
	b.WriteString("  " + p.LaunchCommand() + "\n")

	return b.String()
}

// RenderPackageList renders one line per resolved package.
func (r *Renderer) RenderPackageList(pkgs []resolver.ResolvedPackage) string {
	var b strings.Builder
	for _, pkg := range pkgs {
		rng := pkg.Range.String()
		if r.color {
			b.WriteString(style.PackageStyle.Render(pkg.Name) + " " + style.RangeStyle.Render(rng) + "\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", pkg.Name, rng))
	}
	return b.String()
}

func (r *Renderer) title(s string) string {
	if r.color {
		return style.TitleStyle.Render(s)
	}
	return s
}
