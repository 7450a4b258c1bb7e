// Package resolver computes the effective package set for a manifest
// and a requested profile of extras groups. Resolution is a pure
// function of its inputs: the manifest is never mutated and every call
// produces a fresh ResolvedEnvironment.
package resolver

import (
	"github.com/hoopdev/ktaga-lab/pkg/errors"
	"github.com/hoopdev/ktaga-lab/pkg/logging"
	"github.com/hoopdev/ktaga-lab/pkg/manifest"
	"github.com/hoopdev/ktaga-lab/pkg/semrange"
)

// SourceRequired marks a package contribution from the always-required
// manifest section rather than from an extras group.
const SourceRequired = "required"

// ResolvedPackage is one package in the resolved set with its merged
// version range and the scopes that contributed to it.
type ResolvedPackage struct {
	Name    string
	Range   semrange.Range
	Sources []string
}

// ResolvedEnvironment is the deduplicated, constraint-merged package
// set for a manifest and profile, ordered deterministically:
// always-required packages in manifest declaration order, then
// group-activated packages in first-activation order.
type ResolvedEnvironment struct {
	Packages []ResolvedPackage

	// Profile is the requested group list with duplicates removed,
	// first occurrence kept
	Profile []string

	// Contributions counts the requirements each requested group
	// contributed (added or merged); the consistency checker flags
	// groups that contributed nothing
	Contributions map[string]int

	// BaseImage and Settings are carried through from the manifest
	BaseImage string
	Settings  map[string]map[string]interface{}
}

// Resolve computes the resolved environment for the given profile.
// Unknown group names fail with UNKNOWN_EXTRAS_GROUP; constraint merges
// with an empty intersection fail with CONFLICTING_VERSION_CONSTRAINT.
func Resolve(m *manifest.Manifest, profile []string) (*ResolvedEnvironment, error) {
	logger := logging.GetLogger("resolver")

	groups := make([]manifest.ExtrasGroup, 0, len(profile))
	requested := make([]string, 0, len(profile))
	seen := make(map[string]bool, len(profile))
	for _, name := range profile {
		if seen[name] {
			continue
		}
		group, ok := m.Group(name)
		if !ok {
			return nil, errors.Newf(errors.ErrUnknownExtrasGroup, "extras group %q is not defined in the manifest", name).
				WithDetail("group", name)
		}
		seen[name] = true
		groups = append(groups, group)
		requested = append(requested, name)
	}

	env := &ResolvedEnvironment{
		Profile:       requested,
		Contributions: make(map[string]int, len(requested)),
		BaseImage:     m.BaseImage,
		Settings:      m.Settings,
	}

	position := make(map[string]int)
	add := func(req manifest.Requirement, source string) error {
		pos, present := position[req.Name]
		if !present {
			position[req.Name] = len(env.Packages)
			env.Packages = append(env.Packages, ResolvedPackage{
				Name:    req.Name,
				Range:   req.Range,
				Sources: []string{source},
			})
			return nil
		}

		merged := env.Packages[pos].Range.Intersect(req.Range)
		if merged.IsEmpty() {
			return errors.Newf(errors.ErrConflictingConstraint,
				"package %q: range %q from %s does not intersect %q", req.Name, req.Range, source, env.Packages[pos].Range).
				WithDetail("package", req.Name).
				WithDetail("have", env.Packages[pos].Range.String()).
				WithDetail("want", req.Range.String()).
				WithDetail("source", source)
		}
		env.Packages[pos].Range = merged
		env.Packages[pos].Sources = append(env.Packages[pos].Sources, source)
		return nil
	}

	for _, idx := range m.Required() {
		if err := add(m.Requirements[idx], SourceRequired); err != nil {
			return nil, err
		}
	}

	for _, group := range groups {
		env.Contributions[group.Name] = 0
		for _, idx := range group.Members {
			if err := add(m.Requirements[idx], group.Name); err != nil {
				return nil, err
			}
			env.Contributions[group.Name]++
		}
	}

	logger.Debug().
		Strs("profile", requested).
		Int("packages", len(env.Packages)).
		Msg("Profile resolved")
	return env, nil
}
