// Package manifest models the declarative dependency manifest of the
// lab environment: package requirements with version ranges, optional
// extras groups that activate additional requirements, and opaque
// settings blobs carried through to the environment plan.
package manifest

import (
	"github.com/hoopdev/ktaga-lab/pkg/semrange"
)

// Requirement is a single installable package requirement.
type Requirement struct {
	// Name of the package, unique within its owning scope
	Name string

	// Range is the version constraint for the package
	Range semrange.Range

	// Group is the owning extras group; empty means always required
	Group string
}

// ExtrasGroup is a named optional bundle of requirements activated
// together. Members are indexes into Manifest.Requirements, in
// activation order.
type ExtrasGroup struct {
	Name    string
	Members []int
}

// Manifest is the immutable, validated dependency manifest. Groups
// reference requirements through index lookup tables so resolution
// never chases pointers.
type Manifest struct {
	// BaseImage is the platform image the environment builds on
	BaseImage string

	// Requirements in declaration order: always-required entries
	// first, then each group's inline entries
	Requirements []Requirement

	// Groups in declaration order
	Groups []ExtrasGroup

	// Settings are opaque configuration blobs (editor, formatter,
	// theme) passed through to the plan unmodified
	Settings map[string]map[string]interface{}

	groupIndex map[string]int
}

// Group returns the extras group with the given name.
func (m *Manifest) Group(name string) (ExtrasGroup, bool) {
	idx, ok := m.groupIndex[name]
	if !ok {
		return ExtrasGroup{}, false
	}
	return m.Groups[idx], true
}

// GroupNames returns all extras group names in declaration order.
func (m *Manifest) GroupNames() []string {
	names := make([]string, len(m.Groups))
	for i, g := range m.Groups {
		names[i] = g.Name
	}
	return names
}

// Required returns the indexes of the always-required requirements in
// declaration order.
func (m *Manifest) Required() []int {
	var idxs []int
	for i, req := range m.Requirements {
		if req.Group == "" {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
