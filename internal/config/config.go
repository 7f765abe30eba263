package config

import (
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quickreturn/internal/linkage"
)

const (
	DefaultR1      = 0.025
	DefaultR2      = 0.010
	DefaultR4      = 0.065
	DefaultR5      = 0.030
	DefaultR7      = 0.040
	DefaultTheta1  = 90.0
	DefaultTheta2  = 30.0
	DefaultOmega2  = -15.0
	DefaultSamples = 360
)

// Config is the on-disk description of a mechanism session. Angles are in
// degrees; lengths are in the unit named by Units.
type Config struct {
	Name     string      `yaml:"name"`
	Units    string      `yaml:"units"`
	Assembly string      `yaml:"assembly"`
	Links    LinksConfig `yaml:"links"`
	Theta1   float64     `yaml:"theta1_deg"`
	Theta2   float64     `yaml:"theta2_deg"`
	Omega2   float64     `yaml:"omega2"`
	Samples  int         `yaml:"samples"`
}

type LinksConfig struct {
	R1 float64 `yaml:"r1"`
	R2 float64 `yaml:"r2"`
	R4 float64 `yaml:"r4"`
	R5 float64 `yaml:"r5"`
	R7 float64 `yaml:"r7"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:     "default",
		Units:    "si",
		Assembly: "open",
		Links: LinksConfig{
			R1: DefaultR1,
			R2: DefaultR2,
			R4: DefaultR4,
			R5: DefaultR5,
			R7: DefaultR7,
		},
		Theta1:  DefaultTheta1,
		Theta2:  DefaultTheta2,
		Omega2:  DefaultOmega2,
		Samples: DefaultSamples,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// DriveAngle returns the configured query angle in radians.
func (c *Config) DriveAngle() float64 {
	return c.Theta2 * math.Pi / 180
}

// Linkage converts the file representation into a validated solver config.
func (c *Config) Linkage() (linkage.Config, error) {
	m, err := c.Mechanism()
	if err != nil {
		return linkage.Config{}, err
	}
	return m.Config(), nil
}

// Mechanism applies the configuration through the mechanism setters, in the
// order a caller would: units, links, angular velocity, sample count.
func (c *Config) Mechanism() (*linkage.Mechanism, error) {
	units, err := linkage.ParseUnits(c.Units)
	if err != nil {
		return nil, err
	}
	asm, err := linkage.ParseAssembly(c.Assembly)
	if err != nil {
		return nil, err
	}

	m := linkage.NewMechanism()
	m.SetUnits(units)
	if err := m.SetAssembly(asm); err != nil {
		return nil, err
	}
	if err := m.SetLinks(c.Links.R1, c.Links.R2, c.Links.R4, c.Links.R5, c.Links.R7, c.Theta1*math.Pi/180); err != nil {
		return nil, err
	}
	if err := m.SetAngularVelocity(c.Omega2); err != nil {
		return nil, err
	}
	if err := m.SetSampleCount(c.Samples); err != nil {
		return nil, err
	}
	return m, nil
}

// Convert returns a copy of the configuration with its lengths expressed in
// the target unit system.
func (c *Config) Convert(to linkage.UnitSystem) (*Config, error) {
	from, err := linkage.ParseUnits(c.Units)
	if err != nil {
		return nil, err
	}
	g := linkage.Geometry{R1: c.Links.R1, R2: c.Links.R2, R4: c.Links.R4, R5: c.Links.R5, R7: c.Links.R7}.Convert(from, to)

	out := *c
	out.Units = to.String()
	out.Links = LinksConfig{R1: g.R1, R2: g.R2, R4: g.R4, R5: g.R5, R7: g.R7}
	return &out, nil
}
