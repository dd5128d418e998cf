package systems

import (
	"log"

	"github.com/automoto/netinterp/archetypes"
	"github.com/automoto/netinterp/components"
	cfg "github.com/automoto/netinterp/config"
	"github.com/automoto/netinterp/interp"
	"github.com/automoto/netinterp/shared/netcomponents"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewRemoteBuffer creates an interpolation buffer from the current
// cfg.Interp settings.
func NewRemoteBuffer() *interp.Buffer {
	opts := []interp.Option{interp.WithCapacity(cfg.Interp.Capacity)}
	if cfg.Interp.ClampAlpha {
		opts = append(opts, interp.WithClampedAlpha())
	}
	return interp.New(cfg.Interp.Mode, cfg.Interp.BufferDelay, opts...)
}

// ApplyRemoteUpdate feeds an update for the entity with the given network
// id into its interpolation buffer, spawning the entity the first time the
// id is seen. Updates with a sequence number not newer than the last one
// accepted are dropped; seq 0 is always accepted.
func ApplyRemoteUpdate(e *ecs.ECS, id esync.NetworkId, seq uint32, update interp.Update) *donburi.Entry {
	entry := findOrSpawnRemote(e, id)
	data := components.NetInterp.Get(entry)

	if seq != 0 && seq <= data.LastSeq {
		data.Dropped++
		return entry
	}
	if seq != 0 {
		data.LastSeq = seq
	}

	data.Buffer.Append(update)
	data.Updates++
	if update.Position != nil {
		data.Received = *update.Position
	}
	return entry
}

func findOrSpawnRemote(e *ecs.ECS, id esync.NetworkId) *donburi.Entry {
	entity := esync.FindByNetworkId(e.World, id)
	if e.World.Valid(entity) {
		return e.World.Entry(entity)
	}

	entry := archetypes.Remote.Spawn(e)
	esync.NetworkIdComponent.SetValue(entry, id)
	components.NetInterp.SetValue(entry, components.NetInterpData{Buffer: NewRemoteBuffer()})
	writePose(entry, components.NetInterp.Get(entry).Buffer)

	log.Printf("[netinterp] tracking remote entity %d (mode=%s delay=%.0fms)",
		id, cfg.Interp.Mode, cfg.Interp.BufferDelay*1000)
	return entry
}

// NewNetInterpSystem returns an update system that advances every remote
// entity's interpolation buffer by stepMillis and writes the resulting
// pose into its net components.
func NewNetInterpSystem(stepMillis func() float64) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		dt := stepMillis()
		components.NetInterp.Each(e.World, func(entry *donburi.Entry) {
			buf := components.NetInterp.Get(entry).Buffer
			if buf == nil {
				return
			}
			buf.Advance(dt)
			writePose(entry, buf)
		})
	}
}

func writePose(entry *donburi.Entry, buf *interp.Buffer) {
	netcomponents.NetPosition.SetValue(entry, netcomponents.NewNetPosition(buf.Position()))
	netcomponents.NetOrientation.SetValue(entry, netcomponents.NetOrientationData{Quat: buf.Orientation()})
	netcomponents.NetScale.SetValue(entry, netcomponents.NewNetScale(buf.Scale()))
	netcomponents.NetVelocity.SetValue(entry, netcomponents.NewNetVelocity(buf.Origin().Velocity))
}

// ResetRemoteBuffers replaces every remote entity's buffer with a fresh one
// built from cfg.Interp. Mode and delay are fixed per buffer, so settings
// changes take effect this way.
func ResetRemoteBuffers(e *ecs.ECS) int {
	count := 0
	components.NetInterp.Each(e.World, func(entry *donburi.Entry) {
		data := components.NetInterp.Get(entry)
		last := data.Buffer
		data.Buffer = NewRemoteBuffer()
		if last != nil && last.State() != interp.Initializing {
			// Seed the new buffer with the pose being shown so the entity
			// does not jump back to the origin while it re-buffers.
			pos, rot, scale := last.Position(), last.Orientation(), last.Scale()
			data.Buffer.SetTarget(pos, mgl64.Vec3{}, rot, scale)
		}
		count++
	})
	if count > 0 {
		log.Printf("[netinterp] reset %d buffers (mode=%s delay=%.0fms clamp=%t)",
			count, cfg.Interp.Mode, cfg.Interp.BufferDelay*1000, cfg.Interp.ClampAlpha)
	}
	return count
}

// RemoveStale removes networked entities whose id is not in present.
func RemoveStale(e *ecs.ECS, present map[esync.NetworkId]bool) {
	var stale []*donburi.Entry
	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !present[*id] {
			stale = append(stale, entry)
		}
	})

	for _, entry := range stale {
		log.Printf("[netinterp] removing remote entity %d", *esync.GetNetworkId(entry))
		entry.Remove()
	}
}
