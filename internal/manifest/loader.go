package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"clr-typesys/platform"
)

// LoadFile loads and parses a YAML manifest from the given path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Manifest.
func Parse(data []byte) (*Manifest, error) {
	var mf Manifest

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&mf)

	if err := Validate(&mf); err != nil {
		return nil, err
	}

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *Manifest) {
	if mf.Version == "" {
		mf.Version = "1"
	}

	if mf.Platform == "" && mf.PlatformSpec == nil {
		mf.Platform = platform.Default.Name
	}

	for i := range mf.Modules {
		for j := range mf.Modules[i].Types {
			applyTypeDefaults(&mf.Modules[i].Types[j])
		}
	}
}

func applyTypeDefaults(t *Type) {
	if t.Kind == "" {
		t.Kind = "class"
	}

	if t.Kind == "enum" && t.Underlying == "" {
		t.Underlying = "int32"
	}

	for i := range t.Methods {
		if t.Methods[i].Return == "" {
			t.Methods[i].Return = "void"
		}
	}

	for i := range t.Nested {
		applyTypeDefaults(&t.Nested[i])
	}
}

// Validate checks the manifest structure without resolving type references.
func Validate(mf *Manifest) error {
	var errs []error

	if mf.Name == "" {
		errs = append(errs, errors.New("manifest name is empty"))
	}

	if mf.PlatformSpec == nil {
		if _, ok := platform.Lookup(mf.Platform); !ok {
			errs = append(errs, fmt.Errorf("unknown platform %q", mf.Platform))
		}
	}

	seen := map[string]struct{}{}
	cores := 0

	for i := range mf.Modules {
		m := &mf.Modules[i]

		if m.Name == "" {
			errs = append(errs, fmt.Errorf("module %d has no name", i))
			continue
		}

		if _, ok := seen[m.Name]; ok {
			errs = append(errs, fmt.Errorf("duplicate module %q", m.Name))
		}

		seen[m.Name] = struct{}{}

		if m.CoreLibrary {
			cores++
		}

		for j := range m.Types {
			errs = append(errs, validateType(m.Name, &m.Types[j])...)
		}
	}

	if cores > 1 {
		errs = append(errs, fmt.Errorf("%d modules marked as core library, at most one allowed", cores))
	}

	return errors.Join(errs...)
}

func validateType(module string, t *Type) []error {
	var errs []error

	where := fmt.Sprintf("module %s: type %s", module, t.Name)

	if t.Name == "" {
		errs = append(errs, fmt.Errorf("module %s: type without name in namespace %q", module, t.Namespace))
	}

	members := map[string]struct{}{}
	for _, f := range t.Fields {
		if _, ok := members[f.Name]; ok {
			errs = append(errs, fmt.Errorf("%s: duplicate field %q", where, f.Name))
		}

		members[f.Name] = struct{}{}
	}

	for i := range t.Nested {
		if t.Nested[i].Namespace != "" {
			errs = append(errs, fmt.Errorf("%s: nested type %s cannot have a namespace", where, t.Nested[i].Name))
		}

		errs = append(errs, validateType(module, &t.Nested[i])...)
	}

	return errs
}

// Marshal serializes a Manifest to YAML.
func Marshal(mf *Manifest) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a Manifest to the given path.
func WriteFile(mf *Manifest, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file %s: %w", path, err)
	}

	return nil
}
