// Package plan turns a resolved environment plus runtime parameters
// into the environment plan handed to the build/deploy collaborator:
// the final package list for the install step and the JupyterLab
// launch command specification.
package plan

import (
	"fmt"
	"net"
	"strings"

	"github.com/hoopdev/ktaga-lab/pkg/errors"
	"github.com/hoopdev/ktaga-lab/pkg/logging"
	"github.com/hoopdev/ktaga-lab/pkg/resolver"
)

// Default runtime parameter values.
const (
	DefaultPort        = 8888
	DefaultBindAddress = "127.0.0.1"
	DefaultWorkingDir  = "/home/jovyan/work"
)

// RuntimeParams are the launch parameters for the notebook server.
type RuntimeParams struct {
	// BindAddress is an IP literal, hostname, or the "*" wildcard
	BindAddress string

	// Port is the TCP port the server listens on
	Port int

	// Token is the authentication token; empty disables token auth
	Token string

	// WorkingDir is the notebook working directory inside the container
	WorkingDir string

	// BaseImage is the platform image the environment builds on
	BaseImage string

	AllowRoot bool
	NoBrowser bool
}

// Validate checks the runtime parameters, failing with
// INVALID_RUNTIME_PARAMETER on the first violation.
func (p RuntimeParams) Validate() error {
	if p.Port < 1 || p.Port > 65535 {
		return errors.Newf(errors.ErrInvalidRuntimeParameter, "port %d is outside the valid TCP range 1-65535", p.Port).
			WithDetail("field", "port").
			WithDetail("value", p.Port)
	}
	if !validBindAddress(p.BindAddress) {
		return errors.Newf(errors.ErrInvalidRuntimeParameter, "bind address %q is not an IP literal, hostname, or wildcard", p.BindAddress).
			WithDetail("field", "bind_address").
			WithDetail("value", p.BindAddress)
	}
	if strings.TrimSpace(p.WorkingDir) == "" {
		return errors.New(errors.ErrInvalidRuntimeParameter, "working directory must not be empty").
			WithDetail("field", "working_dir")
	}
	if strings.TrimSpace(p.BaseImage) == "" {
		return errors.New(errors.ErrInvalidRuntimeParameter, "base image must not be empty").
			WithDetail("field", "base_image")
	}
	return nil
}

// TokenEnabled reports whether token authentication is configured.
func (p RuntimeParams) TokenEnabled() bool {
	return p.Token != ""
}

// LoopbackOnly reports whether the bind address restricts the server
// to the local host.
func (p RuntimeParams) LoopbackOnly() bool {
	if p.BindAddress == "localhost" {
		return true
	}
	if ip := net.ParseIP(p.BindAddress); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

func validBindAddress(addr string) bool {
	if addr == "" {
		return false
	}
	if addr == "*" {
		return true
	}
	if net.ParseIP(addr) != nil {
		return true
	}
	return validHostname(addr)
}

// validHostname applies the RFC 1123 label rules: dot-separated labels
// of letters, digits, and interior hyphens, 63 characters max each.
func validHostname(host string) bool {
	if len(host) == 0 || len(host) > 253 {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			switch {
			case c >= 'a' && c <= 'z':
			case c >= 'A' && c <= 'Z':
			case c >= '0' && c <= '9':
			case c == '-':
			default:
				return false
			}
		}
	}
	return true
}

// Plan is the complete environment plan: the resolved package set plus
// the fully formed runtime configuration. It is ephemeral, recomputed
// on every invocation, and never mutated after Build returns.
type Plan struct {
	Packages      []resolver.ResolvedPackage
	Profile       []string
	Contributions map[string]int
	Runtime       RuntimeParams
	Settings      map[string]map[string]interface{}
}

// Build validates the runtime parameters and assembles the plan.
// The base image falls back to the manifest's when the parameters
// leave it empty.
func Build(env *resolver.ResolvedEnvironment, params RuntimeParams) (*Plan, error) {
	logger := logging.GetLogger("plan.builder")

	if params.BaseImage == "" {
		params.BaseImage = env.BaseImage
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	p := &Plan{
		Packages:      env.Packages,
		Profile:       env.Profile,
		Contributions: env.Contributions,
		Runtime:       params,
		Settings:      env.Settings,
	}

	logger.Debug().
		Strs("profile", p.Profile).
		Int("packages", len(p.Packages)).
		Str("bind", params.BindAddress).
		Int("port", params.Port).
		Msg("Environment plan built")
	return p, nil
}

// LaunchArgs renders the notebook server launch command as an argument
// vector for the deploy collaborator.
func (p *Plan) LaunchArgs() []string {
	args := []string{
		"jupyter", "lab",
		fmt.Sprintf("--ip=%s", p.Runtime.BindAddress),
		fmt.Sprintf("--port=%d", p.Runtime.Port),
	}
	if p.Runtime.NoBrowser {
		args = append(args, "--no-browser")
	}
	if p.Runtime.AllowRoot {
		args = append(args, "--allow-root")
	}
	args = append(args, fmt.Sprintf("--NotebookApp.token=%s", p.Runtime.Token))
	args = append(args, fmt.Sprintf("--notebook-dir=%s", p.Runtime.WorkingDir))
	return args
}

// LaunchCommand renders the launch command as a single shell line.
func (p *Plan) LaunchCommand() string {
	return strings.Join(p.LaunchArgs(), " ")
}

// Requirements renders the package list as pip-style requirement
// lines, one per package, suitable for the install step.
func (p *Plan) Requirements() []string {
	lines := make([]string, len(p.Packages))
	for i, pkg := range p.Packages {
		if pkg.Range.Any() {
			lines[i] = pkg.Name
			continue
		}
		lines[i] = pkg.Name + pkg.Range.String()
	}
	return lines
}
