package systems

import (
	"log"

	cfg "github.com/automoto/netinterp/config"
	"github.com/automoto/netinterp/interp"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

// SettingsHooks lets the owning scene react to runtime settings changes.
type SettingsHooks struct {
	LinkChanged func()
	Respawn     func()
}

// NewSettingsInputSystem returns an update system that applies the demo's
// key bindings to the global configuration. Interpolation changes reset
// every remote buffer; every change is persisted.
func NewSettingsInputSystem(hooks SettingsHooks) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		interpChanged, linkChanged := false, false

		for action, binding := range cfg.Input.Bindings {
			if !anyKeyJustPressed(binding.Keys) {
				continue
			}
			switch action {
			case cfg.ActionToggleMode:
				ToggleMode()
				interpChanged = true
			case cfg.ActionToggleClamp:
				cfg.Interp.ClampAlpha = !cfg.Interp.ClampAlpha
				interpChanged = true
			case cfg.ActionDelayUp:
				interpChanged = StepDelay(1) || interpChanged
			case cfg.ActionDelayDown:
				interpChanged = StepDelay(-1) || interpChanged
			case cfg.ActionCycleJitter:
				cfg.Demo.JitterMillis = nextPreset(cfg.Settings.JitterPresets, cfg.Demo.JitterMillis)
				linkChanged = true
			case cfg.ActionCycleLoss:
				cfg.Demo.Loss = nextPreset(cfg.Settings.LossPresets, cfg.Demo.Loss)
				linkChanged = true
			case cfg.ActionRespawn:
				if hooks.Respawn != nil {
					hooks.Respawn()
				}
			}
		}

		if interpChanged {
			ResetRemoteBuffers(e)
		}
		if linkChanged {
			log.Printf("[settings] link latency=%.0fms jitter=%.0fms loss=%.0f%%",
				cfg.Demo.LatencyMillis, cfg.Demo.JitterMillis, cfg.Demo.Loss*100)
			if hooks.LinkChanged != nil {
				hooks.LinkChanged()
			}
		}
		if interpChanged || linkChanged {
			SaveCurrentSettings()
		}
	}
}

func anyKeyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// ToggleMode switches cfg.Interp between linear and Hermite positions.
func ToggleMode() {
	if cfg.Interp.Mode == interp.ModeLinear {
		cfg.Interp.Mode = interp.ModeHermite
	} else {
		cfg.Interp.Mode = interp.ModeLinear
	}
}

// StepDelay moves cfg.Interp.BufferDelay one preset up or down. It reports
// whether the delay changed.
func StepDelay(dir int) bool {
	presets := cfg.Settings.DelayPresets
	if len(presets) == 0 {
		return false
	}
	i := cfg.PresetIndex(presets, cfg.Interp.BufferDelay) + dir
	if i < 0 || i >= len(presets) {
		return false
	}
	cfg.Interp.BufferDelay = presets[i]
	return true
}

func nextPreset(presets []float64, current float64) float64 {
	if len(presets) == 0 {
		return current
	}
	return presets[(cfg.PresetIndex(presets, current)+1)%len(presets)]
}
