// Package interp turns irregular, jittery state updates for a remote
// entity into a continuous pose sampled a fixed delay behind ingestion.
//
// A Buffer is fed with Append (or one of the Set helpers) whenever an
// update arrives and stepped with Advance once per rendered frame. Time is
// measured in milliseconds on a local playback clock that only starts
// running once the first update has been consumed. A Buffer is not safe
// for concurrent use.
package interp

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultBufferDelay is the playback delay in seconds used by NewDefault.
const DefaultBufferDelay = 0.15

type State int

const (
	// Initializing means no update has been consumed yet.
	Initializing State = iota
	// Buffering means the pose is pinned to the first update while the
	// playback clock runs up to the buffer delay.
	Buffering
	// Playing is steady state. A buffer never leaves it.
	Playing
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Buffering:
		return "buffering"
	case Playing:
		return "playing"
	}
	return "unknown"
}

// Mode selects how positions are interpolated. Orientation is always
// slerped and scale always lerped.
type Mode int

const (
	ModeLinear Mode = iota
	ModeHermite
)

func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeHermite:
		return "hermite"
	}
	return "unknown"
}

// ParseMode maps a mode name as produced by Mode.String back to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "lerp":
		return ModeLinear, nil
	case "hermite":
		return ModeHermite, nil
	}
	return ModeLinear, fmt.Errorf("unknown interpolation mode %q", s)
}

// Update is a partial state sample. Nil fields are inherited from the most
// recent known frame.
type Update struct {
	Position    *mgl64.Vec3
	Velocity    *mgl64.Vec3
	Orientation *mgl64.Quat
	Scale       *mgl64.Vec3
}

func (u Update) applyTo(f *Frame) {
	if u.Position != nil {
		f.Position = *u.Position
	}
	if u.Velocity != nil {
		f.Velocity = *u.Velocity
	}
	if u.Orientation != nil {
		f.Orientation = *u.Orientation
	}
	if u.Scale != nil {
		f.Scale = *u.Scale
	}
}

// Buffer interpolates the pose of one remote entity.
type Buffer struct {
	state      State
	mode       Mode
	clampAlpha bool

	frames frameRing
	origin Frame

	clock float64 // ms
	delay float64 // ms
	alpha float64

	position    mgl64.Vec3
	orientation mgl64.Quat
	scale       mgl64.Vec3
}

// New creates a Buffer that renders bufferDelaySeconds behind ingestion.
// Negative delays are treated as zero.
func New(mode Mode, bufferDelaySeconds float64, opts ...Option) *Buffer {
	o := options{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}

	delay := bufferDelaySeconds * 1000
	if !(delay > 0) {
		delay = 0
	}

	rest := restFrame()
	return &Buffer{
		state:       Initializing,
		mode:        mode,
		clampAlpha:  o.clampAlpha,
		frames:      newFrameRing(o.capacity),
		origin:      rest,
		delay:       delay,
		position:    rest.Position,
		orientation: rest.Orientation,
		scale:       rest.Scale,
	}
}

// NewDefault creates a linear Buffer with DefaultBufferDelay.
func NewDefault() *Buffer {
	return New(ModeLinear, DefaultBufferDelay)
}

// Append ingests an update at the current playback clock. Updates landing
// on the same clock value are merged into one frame, last write wins per
// field.
func (b *Buffer) Append(u Update) {
	tail := b.frames.back()
	if tail != nil && tail.Time == b.clock {
		u.applyTo(tail)
		return
	}

	f := b.origin
	if tail != nil {
		f = *tail
	}
	u.applyTo(&f)
	f.Time = b.clock
	b.frames.push(f)
}

// SetTarget ingests a complete sample.
func (b *Buffer) SetTarget(position, velocity mgl64.Vec3, orientation mgl64.Quat, scale mgl64.Vec3) {
	b.Append(Update{
		Position:    &position,
		Velocity:    &velocity,
		Orientation: &orientation,
		Scale:       &scale,
	})
}

// SetPosition ingests a position and, optionally, the velocity at that
// position.
func (b *Buffer) SetPosition(position mgl64.Vec3, velocity ...mgl64.Vec3) {
	u := Update{Position: &position}
	if len(velocity) > 0 {
		u.Velocity = &velocity[0]
	}
	b.Append(u)
}

func (b *Buffer) SetOrientation(orientation mgl64.Quat) {
	b.Append(Update{Orientation: &orientation})
}

func (b *Buffer) SetScale(scale mgl64.Vec3) {
	b.Append(Update{Scale: &scale})
}

// Advance steps playback by dt milliseconds. Negative or non-finite steps
// are treated as zero.
func (b *Buffer) Advance(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		dt = 0
	}

	if b.state == Initializing && b.frames.Len() > 0 {
		b.origin, _ = b.frames.pop()
		b.position = b.origin.Position
		b.orientation = b.origin.Orientation
		b.scale = b.origin.Scale
		b.state = Buffering
	}

	if b.state == Buffering && b.frames.Len() > 0 && b.clock > b.delay {
		b.state = Playing
	}

	if b.state == Playing {
		b.play(dt)
	}

	if b.state != Initializing {
		b.clock += dt
	}
}

func (b *Buffer) play(dt float64) {
	mark := b.clock - b.delay

	// Retire every frame playback has passed. The last frame is never
	// removed: it is copied into the origin and re-stamped just ahead of
	// the clock, which holds the last known state when updates stop.
	for b.frames.Len() > 0 && b.frames.front().Time < mark {
		if b.frames.Len() > 1 {
			b.origin, _ = b.frames.pop()
			continue
		}
		head := b.frames.front()
		b.origin = *head
		head.Time = b.clock + dt
	}

	head := b.frames.front()
	if head == nil || head.Time <= 0 {
		return
	}

	span := head.Time - b.origin.Time
	alpha := 1.0
	if span > 0 {
		alpha = (mark - b.origin.Time) / span
	}
	if b.clampAlpha {
		alpha = mgl64.Clamp(alpha, 0, 1)
	}
	b.alpha = alpha

	switch b.mode {
	case ModeHermite:
		b.position = Hermite(
			b.origin.Position,
			head.Position,
			b.origin.Velocity.Mul(span),
			head.Velocity.Mul(span),
			alpha,
		)
	default:
		b.position = Lerp(b.origin.Position, head.Position, alpha)
	}
	b.orientation = Slerp(b.origin.Orientation, head.Orientation, alpha)
	b.scale = Lerp(b.origin.Scale, head.Scale, alpha)
}

// Position returns the current interpolated position.
func (b *Buffer) Position() mgl64.Vec3 {
	return b.position
}

// Orientation returns the current interpolated orientation.
func (b *Buffer) Orientation() mgl64.Quat {
	return b.orientation
}

// Scale returns the current interpolated scale.
func (b *Buffer) Scale() mgl64.Vec3 {
	return b.scale
}

func (b *Buffer) State() State {
	return b.state
}

func (b *Buffer) Mode() Mode {
	return b.mode
}

// Clock returns the playback clock in milliseconds.
func (b *Buffer) Clock() float64 {
	return b.clock
}

// Delay returns the buffer delay in milliseconds.
func (b *Buffer) Delay() float64 {
	return b.delay
}

// Alpha returns the interpolation factor used for the last computed pose.
// Without WithClampedAlpha it may fall outside [0, 1].
func (b *Buffer) Alpha() float64 {
	return b.alpha
}

// Len returns the number of frames waiting for playback.
func (b *Buffer) Len() int {
	return b.frames.Len()
}

// Origin returns the frame the current interval starts from.
func (b *Buffer) Origin() Frame {
	return b.origin
}

// Head returns the frame the current interval ends at.
func (b *Buffer) Head() (Frame, bool) {
	head := b.frames.front()
	if head == nil {
		return Frame{}, false
	}
	return *head, true
}
