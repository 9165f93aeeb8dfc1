package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ChainConfig is the root structure for a chain definition (e.g. from YAML).
type ChainConfig struct {
	Name    string         `yaml:"name"`
	Args    map[string]any `yaml:"args"` // initial store values
	Actions []ActionRef    `yaml:"actions"`
}

// ActionRef is a single action entry: either a plain registered name or name + overrides.
// In YAML, an action can be written as:
//   - create_tarball
//   - name: sign_artifact
//     map: {b: tarball}
//     outputs: [signature]
type ActionRef struct {
	Name string `yaml:"name"`

	// Map merges param -> store name pairs into the action's input mapping.
	Map map[string]string `yaml:"map"`

	// Outputs are appended to the action's declared output names.
	Outputs []string `yaml:"outputs"`
}

// UnmarshalYAML allows an action to be a string (name only) or a struct.
func (r *ActionRef) UnmarshalYAML(value *yaml.Node) error {
	var nameOnly string
	if err := value.Decode(&nameOnly); err == nil {
		r.Name = nameOnly
		return nil
	}
	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			k := value.Content[i]
			if !actionKeys[k.Value] {
				return fmt.Errorf("line %d: field %s not found in action", k.Line, k.Value)
			}
		}
	}
	type raw ActionRef
	return value.Decode((*raw)(r))
}

var actionKeys = map[string]bool{"name": true, "map": true, "outputs": true}

// ParseChainConfig parses YAML bytes into a single ChainConfig. Unknown
// top-level keys are rejected.
func ParseChainConfig(data []byte) (*ChainConfig, error) {
	return ReadChainConfig(bytes.NewReader(data))
}

// ReadChainConfig decodes one ChainConfig from r.
func ReadChainConfig(r io.Reader) (*ChainConfig, error) {
	var cfg ChainConfig
	if err := decodeStrict(r, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MultiChainConfig is the root structure for a file that defines multiple chains.
// Top-level key is "chains"; each value is a chain (name, args, actions).
type MultiChainConfig struct {
	Chains map[string]ChainConfig `yaml:"chains"`
}

// ParseMultiChainConfig parses YAML bytes that contain a "chains" map from name to chain config.
// Example YAML:
//
//	chains:
//	  release:
//	    args: {a: 1}
//	    actions: [create_tarball, sign_artifact]
//	  verify:
//	    actions: [compute_sha256]
func ParseMultiChainConfig(data []byte) (*MultiChainConfig, error) {
	var cfg MultiChainConfig
	if err := decodeStrict(bytes.NewReader(data), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeStrict(r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
