package interp

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func playingBuffer(opts ...Option) *Buffer {
	b := New(ModeLinear, 0.1, opts...)
	b.state = Playing
	b.clock = 200
	return b
}

func frameAt(x, time float64) Frame {
	f := restFrame()
	f.Position = mgl64.Vec3{x, 0, 0}
	f.Time = time
	return f
}

func TestZeroSpanSnapsToHead(t *testing.T) {
	b := playingBuffer()
	b.origin = frameAt(0, 150)
	b.frames.push(frameAt(4, 150))

	b.Advance(10)

	assert.Equal(t, 1.0, b.Alpha())
	assert.Equal(t, mgl64.Vec3{4, 0, 0}, b.Position())
}

func TestAlphaUnclampedByDefault(t *testing.T) {
	b := playingBuffer()
	// mark (100) is behind the origin, so alpha goes negative.
	b.origin = frameAt(0, 150)
	b.frames.push(frameAt(30, 300))

	b.Advance(10)

	assert.InDelta(t, -1.0/3, b.Alpha(), 1e-12)
	assert.InDelta(t, -10.0, b.Position().X(), 1e-9)
}

func TestWithClampedAlpha(t *testing.T) {
	b := playingBuffer(WithClampedAlpha())
	b.origin = frameAt(0, 150)
	b.frames.push(frameAt(30, 300))

	b.Advance(10)

	assert.Equal(t, 0.0, b.Alpha())
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, b.Position())
	assert.False(t, math.IsNaN(b.Orientation().W))
}

func TestWithCapacity(t *testing.T) {
	b := New(ModeLinear, 0.1, WithCapacity(3))
	assert.Len(t, b.frames.frames, 3)

	b = New(ModeLinear, 0.1, WithCapacity(0))
	assert.Len(t, b.frames.frames, defaultCapacity)
}
