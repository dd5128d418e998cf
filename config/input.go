package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical demo action
type ActionID int

const (
	ActionToggleMode ActionID = iota
	ActionToggleClamp
	ActionDelayUp
	ActionDelayDown
	ActionCycleJitter
	ActionCycleLoss
	ActionRespawn
)

// InputBinding represents the keys bound to an action
type InputBinding struct {
	Keys []ebiten.Key
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		Bindings: map[ActionID]InputBinding{
			ActionToggleMode:  {Keys: []ebiten.Key{ebiten.KeyM}},
			ActionToggleClamp: {Keys: []ebiten.Key{ebiten.KeyC}},
			ActionDelayUp:     {Keys: []ebiten.Key{ebiten.KeyUp, ebiten.KeyW}},
			ActionDelayDown:   {Keys: []ebiten.Key{ebiten.KeyDown, ebiten.KeyS}},
			ActionCycleJitter: {Keys: []ebiten.Key{ebiten.KeyJ}},
			ActionCycleLoss:   {Keys: []ebiten.Key{ebiten.KeyL}},
			ActionRespawn:     {Keys: []ebiten.Key{ebiten.KeyR}},
		},
	}
}
