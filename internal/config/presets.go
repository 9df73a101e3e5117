package config

// Presets are ready-to-run configurations for common scenarios.
var Presets = map[string]*Config{
	"galaxy": {
		G: 1.0, SolarMass: 10000, MinDist: 4.0, MaxDist: 0, Theta: 0.5, Dt: 1.0,
		Rings: []RingConfig{
			{Num: 1000, MinDist: 50, MaxDist: 250, Dy: 10},
		},
	},
	"cluster": {
		G: 1.0, MinDist: 1.0, MaxDist: 0, Theta: 0.5, Dt: 1.0,
		Gens: []GenConfig{
			{Name: "stellar", Type: "mass", Min: 0.5, Max: 2.0},
			{Name: "core", Type: "translation",
				X: Range{Min: -100, Max: 100}, Y: Range{Min: -100, Max: 100}},
			{Name: "drift", Type: "velocity",
				DX: Range{Min: -0.5, Max: 0.5}, DY: Range{Min: -0.5, Max: 0.5}},
		},
		Bodies: []GroupConfig{
			{Name: "stars", Num: 500, Mass: "stellar", Translation: "core", Velocity: "drift"},
		},
	},
	"collision": {
		G: 1.0, MinDist: 2.0, MaxDist: 0, Theta: 0.5, Dt: 1.0,
		Gens: []GenConfig{
			{Name: "left", Type: "translation",
				X: Range{Min: -300, Max: -150}, Y: Range{Min: -75, Max: 75}},
			{Name: "right", Type: "translation",
				X: Range{Min: 150, Max: 300}, Y: Range{Min: -75, Max: 75}},
			{Name: "inward", Type: "velocity",
				DX: Range{Min: 0.5, Max: 1.5}, DY: Range{Min: -0.2, Max: 0.2}},
			{Name: "outward", Type: "velocity",
				DX: Range{Min: -1.5, Max: -0.5}, DY: Range{Min: -0.2, Max: 0.2}},
		},
		Bodies: []GroupConfig{
			{Name: "west", Num: 250, Translation: "left", Velocity: "inward"},
			{Name: "east", Num: 250, Translation: "right", Velocity: "outward"},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
