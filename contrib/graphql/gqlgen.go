package graphql

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// pkgPath is the import path gqlgen model bindings point at.
const pkgPath = "github.com/syssam/sqldata/contrib/graphql"

// GQLGenConfig mirrors the subset of gqlgen.yml this package reads and
// updates. Keys outside this subset are dropped on save.
type GQLGenConfig struct {
	SchemaFilename StringList              `yaml:"schema,omitempty"`
	Exec           OutputConfig            `yaml:"exec,omitempty"`
	Model          OutputConfig            `yaml:"model,omitempty"`
	Resolver       ResolverConfig          `yaml:"resolver,omitempty"`
	Autobind       []string                `yaml:"autobind,omitempty"`
	Models         map[string]TypeMapEntry `yaml:"models,omitempty"`

	// Generation knobs, passed through to gqlgen untouched.
	OmitSliceElementPointers   bool `yaml:"omit_slice_element_pointers,omitempty"`
	OmitGetters                bool `yaml:"omit_getters,omitempty"`
	OmitComplexity             bool `yaml:"omit_complexity,omitempty"`
	StructFieldsAlwaysPointers bool `yaml:"struct_fields_always_pointers,omitempty"`
	NullableInputOmittable     bool `yaml:"nullable_input_omittable,omitempty"`
}

// OutputConfig points one generated artifact, the executor or the
// models, at a file and package.
type OutputConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
}

// ResolverConfig configures resolver generation.
type ResolverConfig struct {
	Filename         string `yaml:"filename,omitempty"`
	Package          string `yaml:"package,omitempty"`
	Layout           string `yaml:"layout,omitempty"`
	DirName          string `yaml:"dir,omitempty"`
	FilenameTemplate string `yaml:"filename_template,omitempty"`
}

// TypeMapEntry binds one GraphQL type to Go models and per-field
// overrides.
type TypeMapEntry struct {
	Model  StringList              `yaml:"model,omitempty"`
	Fields map[string]TypeMapField `yaml:"fields,omitempty"`
}

// TypeMapField overrides the binding of a single field.
type TypeMapField struct {
	Resolver  bool   `yaml:"resolver,omitempty"`
	FieldName string `yaml:"fieldName,omitempty"`
}

// StringList is a YAML value gqlgen accepts as either a single string
// or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = StringList{node.Value}
	case yaml.SequenceNode:
		return node.Decode((*[]string)(s))
	default:
		return fmt.Errorf("graphql: value must be a string or a list, got kind %v", node.Kind)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// LoadGQLGenConfig reads a gqlgen.yml file. A missing file yields an
// empty configuration rather than an error, so callers can bootstrap
// one.
func LoadGQLGenConfig(path string) (*GQLGenConfig, error) {
	cfg := &GQLGenConfig{Models: make(map[string]TypeMapEntry)}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("graphql: read gqlgen config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("graphql: parse gqlgen config: %w", err)
	}
	return cfg, nil
}

// SaveGQLGenConfig writes the configuration back to disk, creating
// parent directories as needed.
func SaveGQLGenConfig(path string, cfg *GQLGenConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("graphql: marshal gqlgen config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("graphql: create config directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// appendUnique grows list by v unless it is already there.
func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

// AddSchemaPath adds a schema glob if not already present.
func (c *GQLGenConfig) AddSchemaPath(path string) {
	c.SchemaFilename = appendUnique(c.SchemaFilename, path)
}

// AddAutobind adds a package to the autobind list if not already
// present.
func (c *GQLGenConfig) AddAutobind(pkg string) {
	c.Autobind = appendUnique(c.Autobind, pkg)
}

// SetModel binds a GraphQL type name to a Go model path.
func (c *GQLGenConfig) SetModel(typeName, modelPath string) {
	if c.Models == nil {
		c.Models = make(map[string]TypeMapEntry)
	}
	entry := c.Models[typeName]
	entry.Model = appendUnique(entry.Model, modelPath)
	c.Models[typeName] = entry
}

// InjectScalarBindings binds every scalar declared in Schema to its
// Marshal/Unmarshal pair in this package, so gqlgen resolves them
// without hand-edited model entries.
func (c *GQLGenConfig) InjectScalarBindings() {
	for _, s := range []string{"UUID", "Inet", "CIDR", "MacAddr", "JSON", "IntRange", "TimeRange", "Point"} {
		c.SetModel(s, pkgPath+"."+s)
	}
}
