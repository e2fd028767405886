package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"clr-typesys/internal/common"
	"clr-typesys/platform"
)

// Manifest is the root of a domain manifest.
type Manifest struct {
	Version string `yaml:"version,omitempty"`
	Name    string `yaml:"name"`
	// Platform names a preset (x86, x64, strict).
	Platform string `yaml:"platform,omitempty"`
	// PlatformSpec describes a custom platform and wins over Platform.
	PlatformSpec *platform.Info `yaml:"platform_spec,omitempty"`
	Modules      []Module       `yaml:"modules"`
}

// Module is one module of the domain.
type Module struct {
	Name        string `yaml:"name"`
	CoreLibrary bool   `yaml:"core_library,omitempty"`
	Types       []Type `yaml:"types,omitempty"`
}

// Type declares a type; Nested types share its module.
type Type struct {
	Namespace  string   `yaml:"namespace,omitempty"`
	Name       string   `yaml:"name"`
	Kind       string   `yaml:"kind,omitempty"`
	Visibility string   `yaml:"visibility,omitempty"`
	Base       string   `yaml:"base,omitempty"`
	Interfaces []string `yaml:"interfaces,omitempty"`
	// Underlying is the enum underlying type, int32 by default.
	Underlying        string             `yaml:"underlying,omitempty"`
	ClassSize         int                `yaml:"class_size,omitempty"`
	Packing           int                `yaml:"packing,omitempty"`
	GenericParameters []GenericParameter `yaml:"generic_parameters,omitempty"`
	Fields            []Field            `yaml:"fields,omitempty"`
	Methods           []Method           `yaml:"methods,omitempty"`
	Properties        []Property         `yaml:"properties,omitempty"`
	Events            []Event            `yaml:"events,omitempty"`
	Nested            []Type             `yaml:"nested,omitempty"`
}

// GenericParameter declares a formal parameter. In YAML it is either a bare
// name or a mapping.
type GenericParameter struct {
	Name string `yaml:"name"`
	// Variance is "+", "-" or empty.
	Variance    string   `yaml:"variance,omitempty"`
	Constraints []string `yaml:"constraints,omitempty"`
	Class       bool     `yaml:"class,omitempty"`
	Struct      bool     `yaml:"struct,omitempty"`
	New         bool     `yaml:"new,omitempty"`
}

type Field struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Visibility string `yaml:"visibility,omitempty"`
	Static     bool   `yaml:"static,omitempty"`
	Literal    bool   `yaml:"literal,omitempty"`
	InitOnly   bool   `yaml:"init_only,omitempty"`
}

type Method struct {
	Name       string `yaml:"name"`
	Return     string `yaml:"return,omitempty"`
	Visibility string `yaml:"visibility,omitempty"`
	Static     bool   `yaml:"static,omitempty"`
	Virtual    bool   `yaml:"virtual,omitempty"`
	Abstract   bool   `yaml:"abstract,omitempty"`
	// CallingConvention is vararg, cdecl, stdcall, thiscall or fastcall.
	CallingConvention string             `yaml:"calling_convention,omitempty"`
	GenericParameters []GenericParameter `yaml:"generic_parameters,omitempty"`
	Parameters        []Parameter        `yaml:"parameters,omitempty"`
}

type Parameter struct {
	Name     string `yaml:"name,omitempty"`
	Type     string `yaml:"type"`
	In       bool   `yaml:"in,omitempty"`
	Out      bool   `yaml:"out,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

// Property names its accessors; they must be methods of the same type.
type Property struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Getter string `yaml:"getter,omitempty"`
	Setter string `yaml:"setter,omitempty"`
}

// Event names its accessors; they must be methods of the same type.
type Event struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Add    string `yaml:"add,omitempty"`
	Remove string `yaml:"remove,omitempty"`
}

// UnmarshalYAML accepts a bare parameter name as well as a mapping.
func (g *GenericParameter) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}

		*g = GenericParameter{Name: name}

		return nil

	case yaml.MappingNode:
		type plain GenericParameter

		var v plain
		if err := node.Decode(&v); err != nil {
			return err
		}

		*g = GenericParameter(v)

		return nil

	default:
		return fmt.Errorf("expected name or mapping for generic parameter, got %v", node.Kind)
	}
}

// MarshalYAML writes a parameter without constraints as its bare name.
func (g GenericParameter) MarshalYAML() (any, error) {
	if g.Variance == "" && common.IsEmpty(g.Constraints) && !g.Class && !g.Struct && !g.New {
		return g.Name, nil
	}

	type plain GenericParameter

	return plain(g), nil
}
