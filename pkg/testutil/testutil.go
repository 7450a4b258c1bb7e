// Package testutil provides shared fixtures for testing the manifest,
// resolver, and plan packages.
//
// Usage guidelines:
//   - All manifest content is defined inline, not in external files
//   - Each test writes into its own temp directory with no shared state
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hoopdev/ktaga-lab/pkg/manifest"
	"github.com/hoopdev/ktaga-lab/pkg/plan"
)

// WriteManifest writes manifest content into a fresh temp directory
// and returns its path.
func WriteManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest fixture: %v", err)
	}
	return path
}

// MustLoadManifest writes and loads manifest content, failing the test
// on any error.
func MustLoadManifest(t *testing.T, content string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Load(WriteManifest(t, "manifest.toml", content))
	if err != nil {
		t.Fatalf("failed to load manifest fixture: %v", err)
	}
	return m
}

// ValidRuntimeParams returns runtime parameters that pass validation:
// loopback bind, default port, token auth enabled.
func ValidRuntimeParams() plan.RuntimeParams {
	return plan.RuntimeParams{
		BindAddress: plan.DefaultBindAddress,
		Port:        plan.DefaultPort,
		Token:       "s3cret",
		WorkingDir:  plan.DefaultWorkingDir,
		BaseImage:   "jupyter/base-notebook:python-3.11",
	}
}

// ThreeGroupManifest is the shared three-group fixture: A always
// required, full adds B, zurich adds C and tightens A, stale is empty.
const ThreeGroupManifest = `
[image]
base = "jupyter/base-notebook:python-3.11"

[[package]]
name = "A"
range = ">=1.0,<3.0"

[[extra]]
name = "full"

  [[extra.package]]
  name = "B"
  range = ">=2.0"

[[extra]]
name = "zurich"

  [[extra.package]]
  name = "C"
  range = ">=1.0"

  [[extra.package]]
  name = "A"
  range = ">=1.5"

[[extra]]
name = "stale"
`
