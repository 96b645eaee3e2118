package gamepad

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ErrInvalidMapping is returned for mappings that cannot drive a State.
var ErrInvalidMapping = errors.New("invalid gamepad mapping")

// Mapping names the device's axes and buttons by index.
// Names bound to snapshot fields:
//
//	axes:    lx ly rx ry
//	buttons: a b x y l1 r1 l2 r2 select start home lz rz
//
// Any other name (e.g. "unknown2") is tracked in the raw tables only.
type Mapping struct {
	Axes    []string `json:"axes" yaml:"axes" toml:"axes"`
	Buttons []string `json:"buttons" yaml:"buttons" toml:"buttons"`
}

// DefaultMapping returns the layout of the ShanWan pad the vehicle ships with.
func DefaultMapping() Mapping {
	return Mapping{
		Axes: []string{"lx", "ly", "rx", "ry"},
		Buttons: []string{
			"a", "b", "unknown2", "x", "y", "unknown5",
			"l1", "r1", "l2", "r2",
			"select", "start", "home", "lz", "rz",
		},
	}
}

// Validate rejects empty lists and repeated names.
func (m Mapping) Validate() error {
	if len(m.Axes) == 0 {
		return fmt.Errorf("%w: no axes", ErrInvalidMapping)
	}
	if len(m.Buttons) == 0 {
		return fmt.Errorf("%w: no buttons", ErrInvalidMapping)
	}
	if err := checkNames("axis", m.Axes); err != nil {
		return err
	}
	return checkNames("button", m.Buttons)
}

func checkNames(kind string, names []string) error {
	seen := make(map[string]int, len(names))
	for i, n := range names {
		if n == "" {
			return fmt.Errorf("%w: %s %d has no name", ErrInvalidMapping, kind, i)
		}
		if j, ok := seen[n]; ok {
			return fmt.Errorf("%w: %s name %q used at %d and %d", ErrInvalidMapping, kind, n, j, i)
		}
		seen[n] = i
	}
	return nil
}

// LoadMapping reads a mapping file. The format is picked from the extension:
// .yaml/.yml, .toml, anything else is read as JSON.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("failed to read mapping file: %w", err)
	}
	m, err := ParseMapping(data, formatFromExt(path))
	if err != nil {
		return Mapping{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseMapping decodes and validates a mapping in the given format
// ("json", "yaml" or "toml").
func ParseMapping(data []byte, format string) (Mapping, error) {
	var m Mapping
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &m)
	case "toml":
		err = toml.Unmarshal(data, &m)
	case "json":
		err = json.Unmarshal(data, &m)
	default:
		return Mapping{}, fmt.Errorf("unsupported mapping format: %s", format)
	}
	if err != nil {
		return Mapping{}, fmt.Errorf("failed to decode mapping: %w", err)
	}
	if err := m.Validate(); err != nil {
		return Mapping{}, err
	}
	return m, nil
}

// Marshal encodes the mapping in the given format.
func (m Mapping) Marshal(format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(m)
	case "toml":
		return toml.Marshal(m)
	case "json":
		return json.MarshalIndent(m, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported mapping format: %s", format)
	}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}
