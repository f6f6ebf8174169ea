package config

import (
	"sort"

	"github.com/san-kum/dartsim/internal/board"
)

var Presets = map[string]*Config{
	"quick": {
		NSims: 20000, MinDispersion: 5, MaxDispersion: 50, DispersionStep: 5,
		ResultsFile: DefaultResultsFile,
		AimPoints:   []string{"bullseye", "treble_20", "treble_19"},
	},
	"default": {
		NSims: DefaultNSims, MinDispersion: DefaultMinDispersion, MaxDispersion: DefaultMaxDispersion, DispersionStep: DefaultDispersionStep,
		ResultsFile: DefaultResultsFile,
		AimPoints:   board.AimNames(),
	},
	"fine": {
		NSims: 1000000, MinDispersion: 1, MaxDispersion: 60, DispersionStep: 1,
		ResultsFile: DefaultResultsFile,
		AimPoints:   board.AimNames(),
	},
	"pro": {
		NSims: 500000, MinDispersion: 1, MaxDispersion: 20, DispersionStep: 0.5,
		ResultsFile: DefaultResultsFile,
		AimPoints:   []string{"treble_20", "treble_19", "treble_18", "bullseye"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.AimPoints = append([]string(nil), p.AimPoints...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
