package rig

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config is the data-driven description of a target rig.
type Config struct {
	Name      string    `yaml:"name"`
	Root      string    `yaml:"root"`
	SolveRoot bool      `yaml:"solveRoot,omitempty"`
	Up        []float32 `yaml:"up,omitempty,flow"`

	// Corrections overrides the built-in corrective offsets. nil means defaults,
	// an empty map disables them.
	Corrections map[string]*Correction `yaml:"corrections,omitempty"`

	Joints []*JointConfig `yaml:"joints"`
}

// Correction is a corrective rotation in degrees, applied after solving.
type Correction struct {
	Pitch float64 `yaml:"pitch,omitempty"`
	Yaw   float64 `yaml:"yaw,omitempty"`
	Roll  float64 `yaml:"roll,omitempty"`
}

type JointConfig struct {
	Joint  string `yaml:"joint"`
	Parent string `yaml:"parent,omitempty"`

	// Position is the rest offset from the parent, in the parent's frame.
	Position []float32 `yaml:"position,flow"`
	// Rotation is the local rest rotation: a quaternion (x, y, z, w) or XYZ Euler angles in degrees.
	Rotation []float32 `yaml:"rotation,omitempty,flow"`
	// Direction is the rest direction to the child in the joint's own frame.
	// Derived from the child's position when omitted.
	Direction []float32 `yaml:"direction,omitempty,flow"`

	Child     string   `yaml:"child,omitempty"`
	AverageOf []string `yaml:"averageOf,omitempty,flow"`
	Lateral   []string `yaml:"lateral,omitempty,flow"`

	Extremity        bool `yaml:"extremity,omitempty"`
	Passthrough      bool `yaml:"passthrough,omitempty"`
	CorrectInversion bool `yaml:"correctInversion,omitempty"`
}

// ParseConfig decodes a YAML rig profile.
func ParseConfig(data []byte) (*Config, error) {
	var conf Config
	if err := yaml.UnmarshalStrict(data, &conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &conf, nil
}

func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	conf, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

// Marshal encodes the profile as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
