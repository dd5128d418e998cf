package interp_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/automoto/netinterp/interp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(x, y, z float64) *mgl64.Vec3 {
	v := mgl64.Vec3{x, y, z}
	return &v
}

func TestNewBufferDefaults(t *testing.T) {
	b := interp.NewDefault()

	assert.Equal(t, interp.Initializing, b.State())
	assert.Equal(t, interp.ModeLinear, b.Mode())
	assert.Equal(t, 150.0, b.Delay())
	assert.Equal(t, 0, b.Len())

	assert.Equal(t, mgl64.Vec3{}, b.Position())
	assert.Equal(t, mgl64.QuatIdent(), b.Orientation())
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, b.Scale())
}

func TestNegativeDelayIsZero(t *testing.T) {
	b := interp.New(interp.ModeLinear, -1)
	assert.Equal(t, 0.0, b.Delay())
}

func TestClockFrozenWhileInitializing(t *testing.T) {
	b := interp.NewDefault()

	b.Advance(16)
	b.Advance(16)

	assert.Equal(t, interp.Initializing, b.State())
	assert.Equal(t, 0.0, b.Clock())
}

func TestStateProgression(t *testing.T) {
	b := interp.New(interp.ModeLinear, 0.1)
	require.Equal(t, interp.Initializing, b.State())

	b.SetPosition(mgl64.Vec3{1, 2, 3})
	b.Advance(16)
	require.Equal(t, interp.Buffering, b.State())
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, b.Position(), "pose is pinned to the first update")

	seen := []interp.State{b.State()}
	for i := 0; i < 20; i++ {
		b.SetPosition(mgl64.Vec3{float64(i), 0, 0})
		b.Advance(16)
		seen = append(seen, b.State())
	}
	require.Equal(t, interp.Playing, b.State())

	// Keep going with no more updates; the state must not regress.
	for i := 0; i < 100; i++ {
		b.Advance(16)
		require.Equal(t, interp.Playing, b.State())
	}

	for i := 1; i < len(seen); i++ {
		assert.GreaterOrEqual(t, int(seen[i]), int(seen[i-1]))
	}
}

func TestAppendsWithinOneTickCoalesce(t *testing.T) {
	b := interp.NewDefault()
	b.SetPosition(mgl64.Vec3{0, 0, 0})
	b.Advance(10)
	require.Equal(t, 0, b.Len())

	q := mgl64.QuatRotate(1, mgl64.Vec3{0, 0, 1})
	b.Append(interp.Update{Position: vec(1, 1, 1), Velocity: vec(0.5, 0, 0)})
	b.Append(interp.Update{Orientation: &q})
	b.Append(interp.Update{Position: vec(2, 2, 2)})

	require.Equal(t, 1, b.Len())
	head, ok := b.Head()
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, head.Position)
	assert.Equal(t, mgl64.Vec3{0.5, 0, 0}, head.Velocity)
	assert.Equal(t, q, head.Orientation)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, head.Scale, "unsupplied fields come from the origin")
	assert.Equal(t, 10.0, head.Time)

	b.Advance(10)
	b.SetScale(mgl64.Vec3{3, 3, 3})
	require.Equal(t, 2, b.Len())
}

func TestAppendInheritsFromTail(t *testing.T) {
	b := interp.NewDefault()
	b.SetTarget(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0.1, 0, 0}, mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0}), mgl64.Vec3{2, 2, 2})
	b.Advance(10)

	b.SetPosition(mgl64.Vec3{5, 0, 0})
	b.Advance(10)
	b.SetOrientation(mgl64.QuatIdent())
	require.Equal(t, 2, b.Len())

	// Run far past both frames so the last one becomes the origin.
	b.Advance(1000)
	b.Advance(16)
	require.Equal(t, interp.Playing, b.State())
	require.Equal(t, 1, b.Len())

	origin := b.Origin()
	assert.Equal(t, mgl64.Vec3{5, 0, 0}, origin.Position)
	assert.Equal(t, mgl64.Vec3{0.1, 0, 0}, origin.Velocity)
	assert.Equal(t, mgl64.QuatIdent(), origin.Orientation)
	assert.Equal(t, mgl64.Vec3{2, 2, 2}, origin.Scale)
}

func TestSingleFrameIsHeldForever(t *testing.T) {
	b := interp.New(interp.ModeLinear, 0.05)
	b.SetPosition(mgl64.Vec3{0, 0, 0})
	b.Advance(16)
	b.SetPosition(mgl64.Vec3{8, 0, 0})

	for i := 0; i < 500; i++ {
		b.Advance(16)
		if b.State() == interp.Playing {
			require.GreaterOrEqual(t, b.Len(), 1)
		}
	}

	require.Equal(t, interp.Playing, b.State())
	require.Equal(t, 1, b.Len())
	assertVec(t, mgl64.Vec3{8, 0, 0}, b.Position())

	head, ok := b.Head()
	require.True(t, ok)
	assert.Greater(t, head.Time, b.Origin().Time, "held frame is re-stamped ahead of its copy")
}

func TestLinearMidpoint(t *testing.T) {
	b := interp.New(interp.ModeLinear, 0.1)
	p1 := mgl64.Vec3{0, 4, -2}
	p2 := mgl64.Vec3{10, 8, 2}

	b.SetPosition(p1)
	b.Advance(100)
	b.SetPosition(p2)
	b.Advance(50)
	b.Advance(0)

	require.Equal(t, interp.Playing, b.State())
	assert.InDelta(t, 0.5, b.Alpha(), epsilon)
	assertVec(t, mgl64.Vec3{5, 6, 0}, b.Position())
}

func TestDelayedPlaybackScenario(t *testing.T) {
	b := interp.New(interp.ModeLinear, 0.1)

	b.SetPosition(mgl64.Vec3{0, 0, 0})
	b.Advance(50)
	require.Equal(t, interp.Buffering, b.State())
	require.Equal(t, 50.0, b.Clock())

	b.SetPosition(mgl64.Vec3{10, 0, 0})
	head, ok := b.Head()
	require.True(t, ok)
	require.Equal(t, 50.0, head.Time)

	b.Advance(60)
	require.Equal(t, 110.0, b.Clock())
	b.Advance(60)

	require.Equal(t, interp.Playing, b.State())
	assert.InDelta(t, 0.2, b.Alpha(), epsilon)
	assertVec(t, mgl64.Vec3{2, 0, 0}, b.Position())
}

func TestOrientationStaysUnit(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	randomQuat := func() mgl64.Quat {
		axis := mgl64.Vec3{rng.Float64() - 0.5, rng.Float64() - 0.5, rng.Float64() - 0.5}
		if axis.Len() < 1e-3 {
			axis = mgl64.Vec3{0, 0, 1}
		}
		return mgl64.QuatRotate(rng.Float64()*2*math.Pi, axis.Normalize())
	}

	for _, mode := range []interp.Mode{interp.ModeLinear, interp.ModeHermite} {
		b := interp.New(mode, 0.1)
		for i := 0; i < 400; i++ {
			if rng.IntN(3) == 0 {
				b.SetOrientation(randomQuat())
			}
			b.Advance(rng.Float64() * 40)
			assert.InDelta(t, 1.0, b.Orientation().Len(), 1e-9)
		}
	}
}

func TestAdvanceZeroIsIdempotent(t *testing.T) {
	b := interp.New(interp.ModeLinear, 0.05)
	b.SetPosition(mgl64.Vec3{0, 0, 0})
	for i := 1; i <= 10; i++ {
		b.Advance(16)
		b.SetTarget(mgl64.Vec3{float64(i), 0, 0}, mgl64.Vec3{}, mgl64.QuatRotate(float64(i)*0.1, mgl64.Vec3{0, 0, 1}), mgl64.Vec3{1, 1, 1})
	}
	b.Advance(0)

	state, pos, rot, scale, clock := b.State(), b.Position(), b.Orientation(), b.Scale(), b.Clock()
	for i := 0; i < 10; i++ {
		b.Advance(0)
		assert.Equal(t, state, b.State())
		assert.Equal(t, pos, b.Position())
		assert.Equal(t, rot, b.Orientation())
		assert.Equal(t, scale, b.Scale())
		assert.Equal(t, clock, b.Clock())
	}
}

func TestInvalidStepsAreIgnored(t *testing.T) {
	b := interp.NewDefault()
	b.SetPosition(mgl64.Vec3{1, 0, 0})
	b.Advance(10)

	for _, dt := range []float64{-5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		b.Advance(dt)
		assert.Equal(t, 10.0, b.Clock())
	}
}

func TestZeroStepBeforeFirstUpdateStaysFinite(t *testing.T) {
	b := interp.New(interp.ModeLinear, 0)

	// The second update lands on the same clock value as the first one,
	// after the first was already consumed.
	b.SetPosition(mgl64.Vec3{0, 0, 0})
	b.Advance(0)
	b.SetPosition(mgl64.Vec3{4, 0, 0})
	b.Advance(10)
	b.Advance(10)

	require.Equal(t, interp.Playing, b.State())
	pos := b.Position()
	for i := 0; i < 3; i++ {
		assert.False(t, math.IsNaN(pos[i]) || math.IsInf(pos[i], 0))
	}
	assertVec(t, mgl64.Vec3{4, 0, 0}, pos)
}

func TestHeldSampleSettles(t *testing.T) {
	b := interp.New(interp.ModeLinear, 0.1)
	b.SetPosition(mgl64.Vec3{0, 0, 0})
	b.Advance(100)
	b.SetPosition(mgl64.Vec3{10, 0, 0})
	b.Advance(100)

	for i := 0; i < 5; i++ {
		b.Advance(100)
		assert.GreaterOrEqual(t, b.Alpha(), 0.0)
		assert.LessOrEqual(t, b.Alpha(), 1.0)
	}
	assertVec(t, mgl64.Vec3{10, 0, 0}, b.Position())
}

func TestHermiteModeFollowsVelocity(t *testing.T) {
	b := interp.New(interp.ModeHermite, 0.1)
	v := mgl64.Vec3{0.1, 0, 0} // 10 units over the 100ms interval

	b.SetPosition(mgl64.Vec3{0, 0, 0}, v)
	b.Advance(100)
	b.SetPosition(mgl64.Vec3{10, 0, 0}, v)
	b.Advance(25)
	b.Advance(0)

	require.Equal(t, interp.Playing, b.State())
	assert.InDelta(t, 0.25, b.Alpha(), epsilon)
	assertVec(t, mgl64.Vec3{2.5, 0, 0}, b.Position())

	// The origin frame's velocity is not altered by playback.
	assert.Equal(t, v, b.Origin().Velocity)
}

func TestHermiteModeBendsPath(t *testing.T) {
	tests := []struct {
		name     string
		mode     interp.Mode
		from, to mgl64.Vec3 // velocities in units/ms
		want     float64
	}{
		{"linear ignores velocity", interp.ModeLinear, mgl64.Vec3{}, mgl64.Vec3{}, 2.5},
		{"eases out of rest", interp.ModeHermite, mgl64.Vec3{}, mgl64.Vec3{}, 1.5625},
		{"runs ahead of the chord when leaving fast", interp.ModeHermite, mgl64.Vec3{0.2, 0, 0}, mgl64.Vec3{}, 4.375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := interp.New(tt.mode, 0.1)
			b.SetPosition(mgl64.Vec3{0, 0, 0}, tt.from)
			b.Advance(100)
			b.SetPosition(mgl64.Vec3{10, 0, 0}, tt.to)
			b.Advance(25)
			b.Advance(0)

			require.Equal(t, interp.Playing, b.State())
			require.InDelta(t, 0.25, b.Alpha(), epsilon)
			assertVec(t, mgl64.Vec3{tt.want, 0, 0}, b.Position())
		})
	}
}

func TestScaleIsLerped(t *testing.T) {
	b := interp.New(interp.ModeHermite, 0.1)
	b.SetScale(mgl64.Vec3{1, 1, 1})
	b.Advance(100)
	b.SetScale(mgl64.Vec3{3, 1, 1})
	b.Advance(50)
	b.Advance(0)

	assertVec(t, mgl64.Vec3{2, 1, 1}, b.Scale())
}

func TestLongBurstGrowsBuffer(t *testing.T) {
	b := interp.New(interp.ModeLinear, 1, interp.WithCapacity(2))
	b.SetPosition(mgl64.Vec3{0, 0, 0})
	b.Advance(1)

	for i := 1; i <= 50; i++ {
		b.SetPosition(mgl64.Vec3{float64(i), 0, 0})
		b.Advance(1)
	}
	assert.Equal(t, 50, b.Len())

	head, ok := b.Head()
	require.True(t, ok)
	assert.Equal(t, 1.0, head.Position.X())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    interp.Mode
		wantErr bool
	}{
		{"linear", interp.ModeLinear, false},
		{"LERP", interp.ModeLinear, false},
		{" hermite ", interp.ModeHermite, false},
		{"cubic", interp.ModeLinear, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := interp.ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) interp.Mode {
	t.Helper()
	m, err := interp.ParseMode(s)
	require.NoError(t, err)
	return m
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "initializing", interp.Initializing.String())
	assert.Equal(t, "buffering", interp.Buffering.String())
	assert.Equal(t, "playing", interp.Playing.String())
	assert.Equal(t, "unknown", interp.State(42).String())
}
