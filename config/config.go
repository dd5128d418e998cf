package config

import (
	"image/color"

	"github.com/automoto/netinterp/interp"
)

// Config holds general window configuration
type Config struct {
	Width  int
	Height int
}

// InterpConfig contains the settings every remote entity's interpolation
// buffer is created with
type InterpConfig struct {
	Mode        interp.Mode
	BufferDelay float64 // seconds
	ClampAlpha  bool
	Capacity    int // initial pending-frame capacity
}

// DemoConfig contains the simulated authority and link settings
type DemoConfig struct {
	Entities int
	TickRate int // authority updates per second

	// Link conditions
	LatencyMillis float64
	JitterMillis  float64
	Loss          float64 // probability in [0, 1)
	Seed          uint64

	// Authority motion
	Waypoints      [][2]float64
	LegSeconds     float64 // time to travel between two waypoints
	SpinRadPerSec  float64
	PulseHz        float64 // scale pulse frequency
	PulseAmplitude float64
}

// HUDConfig contains on-screen overlay settings
type HUDConfig struct {
	Margin      int
	LineHeight  int
	BodySize    float64 // half extent of an entity at unit scale
	ReceivedDot float32
}

// Global configuration instances
var C *Config
var Interp InterpConfig
var Demo DemoConfig
var HUD HUDConfig

// Shared RGBA color constants
var (
	White       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow      = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange      = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	BrightGreen = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen  = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	LightRed    = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	LightBlue   = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue    = color.RGBA{R: 60, G: 100, B: 160, A: 255}
)

// EntityColors are cycled through for remote entities
var EntityColors = []color.RGBA{BrightGreen, LightBlue, Orange, Yellow}

func init() {
	C = &Config{
		Width:  960,
		Height: 540,
	}

	Interp = InterpConfig{
		Mode:        interp.ModeLinear,
		BufferDelay: interp.DefaultBufferDelay,
		ClampAlpha:  false,
		Capacity:    16,
	}

	Demo = DemoConfig{
		Entities: 1,
		TickRate: 20,

		LatencyMillis: 60,
		JitterMillis:  25,
		Loss:          0.05,
		Seed:          1,

		Waypoints: [][2]float64{
			{160, 120},
			{800, 120},
			{800, 420},
			{480, 270},
			{160, 420},
		},
		LegSeconds:     1.5,
		SpinRadPerSec:  1.2,
		PulseHz:        0.5,
		PulseAmplitude: 0.3,
	}

	HUD = HUDConfig{
		Margin:      8,
		LineHeight:  16,
		BodySize:    14,
		ReceivedDot: 3,
	}
}
