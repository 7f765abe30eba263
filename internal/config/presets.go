package config

import "sort"

var Presets = map[string]*Config{
	"si": {
		Name: "si", Units: "si", Assembly: "open",
		Links:  LinksConfig{R1: 0.025, R2: 0.010, R4: 0.065, R5: 0.030, R7: 0.040},
		Theta1: 90, Theta2: 30, Omega2: -15.0, Samples: 360,
	},
	"usc": {
		Name: "usc", Units: "usc", Assembly: "open",
		Links:  LinksConfig{R1: 0.0820, R2: 0.0328, R4: 0.2132, R5: 0.0984, R7: 0.164},
		Theta1: 90, Theta2: -30, Omega2: -15.0, Samples: 360,
	},
	"crossed": {
		Name: "crossed", Units: "si", Assembly: "crossed",
		Links:  LinksConfig{R1: 0.025, R2: 0.010, R4: 0.065, R5: 0.030, R7: 0.040},
		Theta1: 90, Theta2: 30, Omega2: -15.0, Samples: 360,
	},
	"long-stroke": {
		Name: "long-stroke", Units: "si", Assembly: "open",
		Links:  LinksConfig{R1: 0.030, R2: 0.018, R4: 0.090, R5: 0.045, R7: 0.060},
		Theta1: 90, Theta2: 0, Omega2: -10.0, Samples: 720,
	},
	"animation": {
		Name: "animation", Units: "si", Assembly: "open",
		Links:  LinksConfig{R1: 0.025, R2: 0.010, R4: 0.065, R5: 0.030, R7: 0.040},
		Theta1: 90, Theta2: 30, Omega2: -15.0, Samples: 50,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
