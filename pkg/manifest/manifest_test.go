// Test Type: Unit Test
// Description: Tests for manifest loading and structural validation

package manifest_test

import (
	"path/filepath"
	"testing"

	"github.com/hoopdev/ktaga-lab/pkg/errors"
	"github.com/hoopdev/ktaga-lab/pkg/manifest"
	"github.com/hoopdev/ktaga-lab/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := testutil.WriteManifest(t, "manifest.toml", `
[image]
base = "jupyter/base-notebook:python-3.11"

[[package]]
name = "qcodes"
range = ">=0.45,<1.0"

[[package]]
name = "pyvisa"
range = ">=1.14"

[[extra]]
name = "zurich"
requires = ["pyvisa"]

  [[extra.package]]
  name = "zhinst"
  range = ">=24.1"

[settings.jupyterlab]
theme = "JupyterLab Dark"
`)

	m, err := manifest.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "jupyter/base-notebook:python-3.11", m.BaseImage)
	require.Len(t, m.Requirements, 3)

	// Always-required entries in declaration order
	required := m.Required()
	require.Len(t, required, 2)
	assert.Equal(t, "qcodes", m.Requirements[required[0]].Name)
	assert.Equal(t, "pyvisa", m.Requirements[required[1]].Name)

	// Group members: by-name references first, then inline entries
	group, ok := m.Group("zurich")
	require.True(t, ok)
	require.Len(t, group.Members, 2)
	assert.Equal(t, "pyvisa", m.Requirements[group.Members[0]].Name)
	assert.Equal(t, "zhinst", m.Requirements[group.Members[1]].Name)
	assert.Equal(t, "zurich", m.Requirements[group.Members[1]].Group)

	// Settings pass through untouched
	assert.Equal(t, "JupyterLab Dark", m.Settings["jupyterlab"]["theme"])

	_, ok = m.Group("quantum")
	assert.False(t, ok)
}

func TestLoadYAML(t *testing.T) {
	path := testutil.WriteManifest(t, "manifest.yaml", `
image:
  base: jupyter/base-notebook:python-3.11
package:
  - name: qcodes
    range: ">=0.45,<1.0"
extra:
  - name: nidaq
    package:
      - name: nidaqmx
        range: ">=0.9"
`)

	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Requirements, 2)
	assert.Equal(t, []string{"nidaq"}, m.GroupNames())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := manifest.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestLoad))
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty_package_name",
			content: `
[[package]]
range = ">=1.0"
`,
		},
		{
			name: "unparsable_range",
			content: `
[[package]]
name = "qcodes"
range = ">=banana"
`,
		},
		{
			name: "unsatisfiable_range",
			content: `
[[package]]
name = "qcodes"
range = ">=3.0,<2.0"
`,
		},
		{
			name: "duplicate_package_same_scope",
			content: `
[[package]]
name = "qcodes"
range = ">=0.45"

[[package]]
name = "qcodes"
range = ">=0.46"
`,
		},
		{
			name: "duplicate_group",
			content: `
[[extra]]
name = "zurich"

[[extra]]
name = "zurich"
`,
		},
		{
			name: "empty_group_name",
			content: `
[[extra]]
requires = []
`,
		},
		{
			name: "dangling_reference",
			content: `
[[extra]]
name = "zurich"
requires = ["zhinst"]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteManifest(t, "manifest.toml", tt.content)
			_, err := manifest.Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedManifest),
				"want MALFORMED_MANIFEST, got %v", err)
		})
	}
}

func TestLoadSharedRequirementAcrossScopes(t *testing.T) {
	// The same package may be declared always-required and re-declared
	// inside a group with a different range; the resolver merges them.
	path := testutil.WriteManifest(t, "manifest.toml", `
[[package]]
name = "qcodes"
range = ">=0.45,<1.0"

[[extra]]
name = "zurich"

  [[extra.package]]
  name = "qcodes"
  range = ">=0.46"
`)

	m, err := manifest.Load(path)
	require.NoError(t, err)
	assert.Len(t, m.Requirements, 2)

	group, _ := m.Group("zurich")
	require.Len(t, group.Members, 1)
	assert.Equal(t, "qcodes", m.Requirements[group.Members[0]].Name)
	assert.Equal(t, "zurich", m.Requirements[group.Members[0]].Group)
}

func TestDefault(t *testing.T) {
	m, err := manifest.Default()
	require.NoError(t, err)

	assert.NotEmpty(t, m.BaseImage)
	assert.Equal(t, []string{"zurich", "kt", "nidaq", "full"}, m.GroupNames())
	assert.NotEmpty(t, m.Required())

	// full references the other groups' requirements by name
	full, ok := m.Group("full")
	require.True(t, ok)
	assert.NotEmpty(t, full.Members)
}
