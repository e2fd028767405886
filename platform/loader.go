package platform

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML platform descriptor from the given path.
func LoadFile(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read platform file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into an Info.
func Parse(data []byte) (Info, error) {
	var p Info

	err := yaml.Unmarshal(data, &p)
	if err != nil {
		return Info{}, fmt.Errorf("failed to parse platform YAML: %w", err)
	}

	applyDefaults(&p)

	if err := p.Validate(); err != nil {
		return Info{}, err
	}

	return p, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(p *Info) {
	if p.PointerSize == 0 {
		p.PointerSize = Default.PointerSize
	}

	if p.Name == "" {
		p.Name = fmt.Sprintf("custom%d", p.PointerSize*8)
	}
}

// Marshal serializes an Info to YAML.
func Marshal(p Info) ([]byte, error) {
	return yaml.Marshal(p)
}

// Lookup returns a well-known descriptor by name.
func Lookup(name string) (Info, bool) {
	for _, p := range []Info{X86, X64, Strict} {
		if p.Name == name {
			return p, true
		}
	}

	return Info{}, false
}
