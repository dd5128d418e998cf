package scenes

import (
	"image/color"
	"log"
	"sync"

	cfg "github.com/automoto/netinterp/config"
	"github.com/automoto/netinterp/network"
	"github.com/automoto/netinterp/systems"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NetworkedScene shows remote entities driven by simulated authorities over
// a simulated link, rendered through their interpolation buffers.
type NetworkedScene struct {
	ecsWorld    *ecs.ECS
	link        *network.Link
	authorities []*network.Authority
	once        sync.Once
	presentIDs  map[esync.NetworkId]bool
}

func NewNetworkedScene() *NetworkedScene {
	return &NetworkedScene{
		presentIDs: make(map[esync.NetworkId]bool),
	}
}

// FrameMillis is the fixed step of one ebiten update.
func FrameMillis() float64 {
	return 1000 / float64(ebiten.TPS())
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	dt := FrameMillis()
	for _, a := range ns.authorities {
		for _, p := range a.Step(dt) {
			ns.link.Send(p)
		}
	}

	for _, p := range ns.link.Advance(dt) {
		systems.ApplyRemoteUpdate(ns.ecsWorld, p.ID, p.Seq, p.Update)
	}

	ns.ecsWorld.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ns.ecsWorld == nil {
		return
	}

	ns.ecsWorld.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	ns.ecsWorld = ecs.NewECS(donburi.NewWorld())
	ns.link = network.NewLink(network.LinkConfig{
		LatencyMillis: cfg.Demo.LatencyMillis,
		JitterMillis:  cfg.Demo.JitterMillis,
		Loss:          cfg.Demo.Loss,
		Seed:          cfg.Demo.Seed,
	})
	ns.spawnAuthorities()

	ns.ecsWorld.AddSystem(systems.NewSettingsInputSystem(systems.SettingsHooks{
		LinkChanged: ns.applyLinkConditions,
		Respawn:     ns.respawn,
	}))
	ns.ecsWorld.AddSystem(systems.NewNetInterpSystem(FrameMillis))
	ns.ecsWorld.AddRenderer(cfg.Default, ns.drawAuthorities())
	ns.ecsWorld.AddRenderer(cfg.Default, systems.DrawRemoteEntities)
	ns.ecsWorld.AddRenderer(cfg.Overlay, systems.NewNetHUD(ns.linkStats))

	log.Printf("[networked] %d remote entities, tick rate %d/s, latency %.0f±%.0fms, loss %.0f%%",
		len(ns.authorities), cfg.Demo.TickRate, cfg.Demo.LatencyMillis, cfg.Demo.JitterMillis, cfg.Demo.Loss*100)
}

func (ns *NetworkedScene) drawAuthorities() func(*ecs.ECS, *ebiten.Image) {
	positions := make([]mgl64.Vec3, 0, cfg.Demo.Entities)
	return systems.NewAuthorityRenderer(func() []mgl64.Vec3 {
		positions = positions[:0]
		for _, a := range ns.authorities {
			positions = append(positions, a.Position())
		}
		return positions
	})
}

func (ns *NetworkedScene) spawnAuthorities() {
	waypoints := make([]mgl64.Vec3, len(cfg.Demo.Waypoints))
	for i, w := range cfg.Demo.Waypoints {
		waypoints[i] = mgl64.Vec3{w[0], w[1], 0}
	}

	ns.authorities = ns.authorities[:0]
	clear(ns.presentIDs)
	for i := 0; i < cfg.Demo.Entities; i++ {
		id := esync.NetworkId(i + 1)
		ns.authorities = append(ns.authorities, network.NewAuthority(network.AuthorityConfig{
			ID:             id,
			TickRate:       cfg.Demo.TickRate,
			Waypoints:      waypoints,
			LegSeconds:     cfg.Demo.LegSeconds,
			Easing:         ease.InOutQuad,
			SpinRadPerSec:  cfg.Demo.SpinRadPerSec * float64(1+i%2),
			PulseHz:        cfg.Demo.PulseHz,
			PulseAmplitude: cfg.Demo.PulseAmplitude,
			StartLeg:       i,
		}))
		ns.presentIDs[id] = true
	}
}

func (ns *NetworkedScene) linkStats() network.LinkStats {
	return ns.link.Stats()
}

func (ns *NetworkedScene) applyLinkConditions() {
	ns.link.SetConditions(cfg.Demo.LatencyMillis, cfg.Demo.JitterMillis, cfg.Demo.Loss)
}

// respawn restarts the authorities and drops every remote entity so they
// go through initialization and buffering again.
func (ns *NetworkedScene) respawn() {
	ns.spawnAuthorities()
	systems.RemoveStale(ns.ecsWorld, map[esync.NetworkId]bool{})
	ns.link.Reset()
	log.Println("[networked] respawned remote entities")
}
