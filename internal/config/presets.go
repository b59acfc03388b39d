package config

import (
	"sort"
	"time"
)

// Presets are named startup configurations, selectable with --preset.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"fine": {
		GridSize: 79, CellWidth: 8, BorderWidth: 1, Theme: "sandshell",
		Brush:         BrushConfig{Size: 12, Step: 2, Min: 2},
		FrameInterval: DefaultFrameInterval, Incremental: true, Layout: "flat",
	},
	"hourglass": {
		GridSize: 39, CellWidth: 16, BorderWidth: 2, Theme: "desert",
		Brush:         BrushConfig{Size: 8, Step: 2, Min: 2},
		FrameInterval: DefaultFrameInterval, Incremental: true, Layout: "funnel",
	},
	"cascade": {
		GridSize: 47, CellWidth: 12, BorderWidth: 2, Theme: "dusk",
		Brush:         BrushConfig{Size: 6, Step: 2, Min: 2},
		FrameInterval: 8300 * time.Microsecond, Incremental: true, Layout: "shelves",
	},
	"dunes": {
		GridSize: 63, CellWidth: 10, BorderWidth: 2, Theme: "desert",
		Brush:         BrushConfig{Size: 8, Step: 2, Min: 2},
		FrameInterval: DefaultFrameInterval, Incremental: true, Layout: "terrain", Seed: 7,
	},
	"terminal": {
		GridSize: 40, CellWidth: 1, BorderWidth: 1, Theme: "mono",
		Brush:         BrushConfig{Size: 4, Step: 1, Min: 1},
		FrameInterval: 33 * time.Millisecond, Incremental: true, Layout: "flat",
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
