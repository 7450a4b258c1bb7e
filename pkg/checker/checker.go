// Package checker validates environment plans before they are
// accepted. Fatal inconsistencies abort the plan; policy findings are
// returned as warnings for the caller to surface.
package checker

import (
	"fmt"

	"github.com/hoopdev/ktaga-lab/pkg/errors"
	"github.com/hoopdev/ktaga-lab/pkg/logging"
	"github.com/hoopdev/ktaga-lab/pkg/plan"
)

// WarningKind identifies a class of non-fatal finding.
type WarningKind string

const (
	// WarningStaleExtrasGroup flags a requested group that
	// contributed no requirements to the resolved set
	WarningStaleExtrasGroup WarningKind = "stale-extras-group"

	// WarningInsecureExposure flags a token-less server bound to a
	// non-loopback address
	WarningInsecureExposure WarningKind = "insecure-exposure"
)

// Warning is a non-fatal finding about a plan. Warnings never block
// plan acceptance.
type Warning struct {
	Kind    WarningKind
	Message string
	Context map[string]string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// Check runs every consistency check over the plan. All checks run on
// every call. A duplicate package after resolution is a defect in the
// resolver and fails with INCONSISTENT_PLAN; everything else is a
// warning.
func Check(p *plan.Plan) ([]Warning, error) {
	logger := logging.GetLogger("checker")

	// The resolver already guarantees uniqueness; re-verify in case
	// resolution was bypassed or miswired.
	seen := make(map[string]bool, len(p.Packages))
	for _, pkg := range p.Packages {
		if seen[pkg.Name] {
			return nil, errors.Newf(errors.ErrInconsistentPlan, "package %q appears more than once in the resolved set", pkg.Name).
				WithDetail("package", pkg.Name)
		}
		seen[pkg.Name] = true
	}

	var warnings []Warning

	for _, group := range p.Profile {
		if p.Contributions[group] == 0 {
			warnings = append(warnings, Warning{
				Kind:    WarningStaleExtrasGroup,
				Message: fmt.Sprintf("extras group %q contributed no requirements; stale or no-op profile entry", group),
				Context: map[string]string{"group": group},
			})
		}
	}

	if !p.Runtime.TokenEnabled() && !p.Runtime.LoopbackOnly() {
		warnings = append(warnings, Warning{
			Kind:    WarningInsecureExposure,
			Message: fmt.Sprintf("token auth is disabled and the server binds %q; the notebook is reachable without authentication", p.Runtime.BindAddress),
			Context: map[string]string{"bind_address": p.Runtime.BindAddress},
		})
	}

	logger.Debug().Int("warnings", len(warnings)).Msg("Plan checked")
	return warnings, nil
}
