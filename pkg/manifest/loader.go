package manifest

import (
	"path/filepath"
	"strings"

	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/hoopdev/ktaga-lab/pkg/errors"
	"github.com/hoopdev/ktaga-lab/pkg/logging"
	"github.com/hoopdev/ktaga-lab/pkg/semrange"
)

// Raw file schema. Always-required packages live in top-level
// [[package]] blocks; each [[extra]] block may reference existing
// requirements by name (requires) and define its own inline
// [[extra.package]] entries.
type rawManifest struct {
	Image    rawImage                          `koanf:"image"`
	Packages []rawPackage                      `koanf:"package"`
	Extras   []rawExtra                        `koanf:"extra"`
	Settings map[string]map[string]interface{} `koanf:"settings"`
}

type rawImage struct {
	Base string `koanf:"base"`
}

type rawPackage struct {
	Name  string `koanf:"name"`
	Range string `koanf:"range"`
}

type rawExtra struct {
	Name     string       `koanf:"name"`
	Requires []string     `koanf:"requires"`
	Packages []rawPackage `koanf:"package"`
}

// Load reads and validates a manifest from a TOML or YAML file,
// selected by extension.
func Load(path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest.loader")

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to load manifest from %s", path)
	}

	m, err := fromKoanf(k)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("requirements", len(m.Requirements)).
		Int("groups", len(m.Groups)).
		Msg("Manifest loaded")
	return m, nil
}

// Default returns the embedded lab manifest.
func Default() (*Manifest, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultManifest}, ktoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestLoad, "failed to load embedded manifest")
	}
	return fromKoanf(k)
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return ktoml.Parser()
	}
}

func fromKoanf(k *koanf.Koanf) (*Manifest, error) {
	var raw rawManifest
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrMalformedManifest, "manifest does not match expected schema")
	}
	return build(raw)
}

// build converts the raw schema into a validated Manifest with index
// lookup tables.
func build(raw rawManifest) (*Manifest, error) {
	m := &Manifest{
		BaseImage:  raw.Image.Base,
		Settings:   raw.Settings,
		groupIndex: make(map[string]int),
	}

	// Requirement definitions by name, first definition wins. Used to
	// resolve by-name group references; base definitions land first.
	defIndex := make(map[string]int)

	appendReq := func(p rawPackage, group string) (int, error) {
		scope := "manifest"
		if group != "" {
			scope = "extras group " + group
		}
		if p.Name == "" {
			return 0, errors.Newf(errors.ErrMalformedManifest, "package with empty name in %s", scope)
		}
		r, err := semrange.Parse(p.Range)
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrMalformedManifest, "invalid version range for package %q", p.Name).
				WithDetail("package", p.Name).
				WithDetail("range", p.Range)
		}
		if r.IsEmpty() {
			return 0, errors.Newf(errors.ErrMalformedManifest, "unsatisfiable version range %q for package %q", p.Range, p.Name).
				WithDetail("package", p.Name).
				WithDetail("range", p.Range)
		}
		for _, existing := range m.Requirements {
			if existing.Name == p.Name && existing.Group == group {
				return 0, errors.Newf(errors.ErrMalformedManifest, "duplicate package %q in %s", p.Name, scope).
					WithDetail("package", p.Name)
			}
		}

		idx := len(m.Requirements)
		m.Requirements = append(m.Requirements, Requirement{Name: p.Name, Range: r, Group: group})
		if _, seen := defIndex[p.Name]; !seen {
			defIndex[p.Name] = idx
		}
		return idx, nil
	}

	for _, p := range raw.Packages {
		if _, err := appendReq(p, ""); err != nil {
			return nil, err
		}
	}

	// Inline group packages are defined before references are
	// resolved, so groups may share each other's requirements.
	inline := make([][]int, len(raw.Extras))
	for gi, e := range raw.Extras {
		if e.Name == "" {
			return nil, errors.New(errors.ErrMalformedManifest, "extras group with empty name")
		}
		if _, dup := m.groupIndex[e.Name]; dup {
			return nil, errors.Newf(errors.ErrMalformedManifest, "duplicate extras group %q", e.Name).
				WithDetail("group", e.Name)
		}
		m.groupIndex[e.Name] = gi

		for _, p := range e.Packages {
			idx, err := appendReq(p, e.Name)
			if err != nil {
				return nil, err
			}
			inline[gi] = append(inline[gi], idx)
		}
	}

	for gi, e := range raw.Extras {
		group := ExtrasGroup{Name: e.Name}
		for _, name := range e.Requires {
			idx, ok := defIndex[name]
			if !ok {
				return nil, errors.Newf(errors.ErrMalformedManifest, "extras group %q references unknown requirement %q", e.Name, name).
					WithDetail("group", e.Name).
					WithDetail("requirement", name)
			}
			group.Members = append(group.Members, idx)
		}
		group.Members = append(group.Members, inline[gi]...)
		m.Groups = append(m.Groups, group)
	}

	return m, nil
}
