package archetypes

import (
	"github.com/automoto/netinterp/components"
	cfg "github.com/automoto/netinterp/config"
	"github.com/automoto/netinterp/shared/netcomponents"
	"github.com/automoto/netinterp/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Remote = newArchetype(
		tags.Remote,
		esync.NetworkIdComponent,
		components.NetInterp,
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetOrientation,
		netcomponents.NetScale,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
