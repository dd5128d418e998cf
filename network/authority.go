package network

import (
	"math"

	"github.com/automoto/netinterp/interp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Packet is one authoritative update as it travels over a Link.
type Packet struct {
	ID     esync.NetworkId
	Seq    uint32
	SentAt float64 // authority clock, ms
	Update interp.Update
}

// AuthorityConfig describes the motion of a simulated authoritative entity.
type AuthorityConfig struct {
	ID             esync.NetworkId
	TickRate       int
	Waypoints      []mgl64.Vec3
	LegSeconds     float64
	Easing         ease.TweenFunc
	SpinRadPerSec  float64
	PulseHz        float64
	PulseAmplitude float64
	StartLeg       int
}

// Authority plays the server side of a remote entity: it moves along a
// closed loop of waypoints and emits a full state update every tick.
type Authority struct {
	cfg        AuthorityConfig
	tickMillis float64
	acc        float64
	now        float64
	seq        uint32

	leg            int
	tweenX, tweenY *gween.Tween

	position mgl64.Vec3
	angle    float64
}

// NewAuthority creates an authority positioned at its starting waypoint.
func NewAuthority(cfg AuthorityConfig) *Authority {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 20
	}
	if cfg.LegSeconds <= 0 {
		cfg.LegSeconds = 1
	}
	if cfg.Easing == nil {
		cfg.Easing = ease.InOutQuad
	}
	if len(cfg.Waypoints) == 0 {
		cfg.Waypoints = []mgl64.Vec3{{}}
	}

	a := &Authority{
		cfg:        cfg,
		tickMillis: 1000 / float64(cfg.TickRate),
		leg:        cfg.StartLeg % len(cfg.Waypoints),
	}
	a.position = cfg.Waypoints[a.leg]
	a.startLeg()
	return a
}

func (a *Authority) startLeg() {
	from := a.cfg.Waypoints[a.leg]
	to := a.cfg.Waypoints[(a.leg+1)%len(a.cfg.Waypoints)]
	d := float32(a.cfg.LegSeconds)
	a.tweenX = gween.New(float32(from.X()), float32(to.X()), d, a.cfg.Easing)
	a.tweenY = gween.New(float32(from.Y()), float32(to.Y()), d, a.cfg.Easing)
}

// Step advances the authority by dt milliseconds and returns the packets
// produced by every tick that elapsed.
func (a *Authority) Step(dt float64) []Packet {
	if !(dt > 0) {
		return nil
	}
	a.acc += dt

	var out []Packet
	for a.acc >= a.tickMillis {
		a.acc -= a.tickMillis
		out = append(out, a.tick())
	}
	return out
}

func (a *Authority) tick() Packet {
	a.now += a.tickMillis
	tickSeconds := float32(a.tickMillis / 1000)

	x, done := a.tweenX.Update(tickSeconds)
	y, _ := a.tweenY.Update(tickSeconds)
	if done {
		a.leg = (a.leg + 1) % len(a.cfg.Waypoints)
		a.startLeg()
	}

	prev := a.position
	a.position = mgl64.Vec3{float64(x), float64(y), 0}
	velocity := a.position.Sub(prev).Mul(1 / a.tickMillis)

	a.angle = math.Mod(a.angle+a.cfg.SpinRadPerSec*a.tickMillis/1000, 2*math.Pi)
	orientation := mgl64.QuatRotate(a.angle, mgl64.Vec3{0, 0, 1})

	s := 1 + a.cfg.PulseAmplitude*math.Sin(2*math.Pi*a.cfg.PulseHz*a.now/1000)
	scale := mgl64.Vec3{s, s, 1}

	position := a.position
	a.seq++
	return Packet{
		ID:     a.cfg.ID,
		Seq:    a.seq,
		SentAt: a.now,
		Update: interp.Update{
			Position:    &position,
			Velocity:    &velocity,
			Orientation: &orientation,
			Scale:       &scale,
		},
	}
}

// Position returns the authoritative position after the last tick.
func (a *Authority) Position() mgl64.Vec3 {
	return a.position
}

func (a *Authority) ID() esync.NetworkId {
	return a.cfg.ID
}
