package config

// SettingsConfig contains the presets the demo cycles through at runtime
type SettingsConfig struct {
	DelayPresets  []float64 // seconds
	JitterPresets []float64 // milliseconds
	LossPresets   []float64
}

// Settings is the global runtime settings configuration
var Settings SettingsConfig

func init() {
	Settings = SettingsConfig{
		DelayPresets:  []float64{0.05, 0.1, 0.15, 0.25, 0.4},
		JitterPresets: []float64{0, 10, 25, 60, 120},
		LossPresets:   []float64{0, 0.05, 0.2},
	}
}

// PresetIndex returns the index of the preset closest to v.
func PresetIndex(presets []float64, v float64) int {
	best := 0
	for i, p := range presets {
		if abs(p-v) < abs(presets[best]-v) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
