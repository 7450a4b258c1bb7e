package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Format represents the plan output format
type Format int

const (
	// FormatText renders a styled human-readable summary
	FormatText Format = iota
	// FormatYAML renders the plan as YAML
	FormatYAML
	// FormatTOML renders the plan as TOML
	FormatTOML
	// FormatRequirements renders only the pip-style package lines
	FormatRequirements
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatRequirements:
		return "requirements"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "plain", "":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "requirements", "reqs":
		return FormatRequirements, nil
	default:
		return FormatText, fmt.Errorf("unknown format: %s", s)
	}
}

// DetectColor reports whether styled output should be used for the
// given file, honoring NO_COLOR.
func DetectColor(output *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(output.Fd()) || isatty.IsCygwinTerminal(output.Fd())
}
