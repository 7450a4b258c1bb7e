// Package config layers the runtime configuration for plan building:
// embedded defaults, an optional config file, KTAGA_* environment
// variables, and CLI flag overrides, in increasing precedence.
package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	laberr "github.com/hoopdev/ktaga-lab/pkg/errors"
	"github.com/hoopdev/ktaga-lab/pkg/logging"
	"github.com/hoopdev/ktaga-lab/pkg/plan"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for environment variable overrides
// (KTAGA_SERVER_PORT sets server.port).
const EnvPrefix = "KTAGA_"

// Config filenames probed in the working directory when no explicit
// path is given.
var configFileNames = []string{".ktaga-lab.toml", "ktaga-lab.toml"}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

type rawConfig struct {
	Manifest struct {
		Path string `koanf:"path"`
	} `koanf:"manifest"`
	Image struct {
		Base string `koanf:"base"`
	} `koanf:"image"`
	Server struct {
		IP      string `koanf:"ip"`
		Port    int    `koanf:"port"`
		Token   string `koanf:"token"`
		Workdir string `koanf:"workdir"`
		Browser bool   `koanf:"browser"`
		Root    bool   `koanf:"root"`
	} `koanf:"server"`
}

// Config is the fully layered runtime configuration.
type Config struct {
	// ManifestPath selects the manifest file; empty selects the
	// embedded default manifest
	ManifestPath string

	// Runtime are the launch parameters derived from the server and
	// image sections
	Runtime plan.RuntimeParams
}

// Load layers the configuration sources. configFile may be empty, in
// which case the working directory is probed for a config file.
// overrides holds dotted-key values from CLI flags and wins over every
// other source.
func Load(configFile string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, ktoml.Parser()); err != nil {
		return nil, laberr.Wrap(err, laberr.ErrConfigLoad, "failed to load embedded defaults")
	}

	// 2. Config file
	path := configFile
	if path == "" {
		path = probeConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, laberr.Wrapf(err, laberr.ErrConfigLoad, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Config file loaded")
	}

	// 3. Environment variables
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, laberr.Wrap(err, laberr.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. CLI flag overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, laberr.Wrap(err, laberr.ErrConfigLoad, "failed to apply flag overrides")
		}
	}

	var raw rawConfig
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, laberr.Wrap(err, laberr.ErrConfigParse, "configuration does not match expected schema")
	}

	return &Config{
		ManifestPath: raw.Manifest.Path,
		Runtime: plan.RuntimeParams{
			BindAddress: raw.Server.IP,
			Port:        raw.Server.Port,
			Token:       raw.Server.Token,
			WorkingDir:  raw.Server.Workdir,
			BaseImage:   raw.Image.Base,
			AllowRoot:   raw.Server.Root,
			NoBrowser:   !raw.Server.Browser,
		},
	}, nil
}

func probeConfigFile() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return ktoml.Parser()
	}
}
