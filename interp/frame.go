package interp

import "github.com/go-gl/mathgl/mgl64"

const defaultCapacity = 16

// Frame is one remote state sample tagged with the playback clock value
// (milliseconds) at which it was ingested.
type Frame struct {
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3 // units per millisecond
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
	Time        float64
}

// restFrame is the pose an entity has before any update arrived.
func restFrame() Frame {
	return Frame{
		Orientation: mgl64.QuatIdent(),
		Scale:       mgl64.Vec3{1, 1, 1},
	}
}

// frameRing is a FIFO of frames stored by value. It doubles its backing
// array when full so pending frames are never overwritten.
type frameRing struct {
	frames []Frame
	head   int
	count  int
}

func newFrameRing(capacity int) frameRing {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	return frameRing{frames: make([]Frame, capacity)}
}

func (r *frameRing) Len() int {
	return r.count
}

func (r *frameRing) index(i int) int {
	return (r.head + i) % len(r.frames)
}

// at returns the i-th frame from the front. The pointer is only valid
// until the next push.
func (r *frameRing) at(i int) *Frame {
	return &r.frames[r.index(i)]
}

func (r *frameRing) front() *Frame {
	if r.count == 0 {
		return nil
	}
	return r.at(0)
}

func (r *frameRing) back() *Frame {
	if r.count == 0 {
		return nil
	}
	return r.at(r.count - 1)
}

func (r *frameRing) push(f Frame) {
	if r.count == len(r.frames) {
		r.grow()
	}
	r.frames[r.index(r.count)] = f
	r.count++
}

func (r *frameRing) pop() (Frame, bool) {
	if r.count == 0 {
		return Frame{}, false
	}
	f := r.frames[r.head]
	r.frames[r.head] = Frame{}
	r.head = (r.head + 1) % len(r.frames)
	r.count--
	return f, true
}

func (r *frameRing) grow() {
	size := len(r.frames) * 2
	if size == 0 {
		size = defaultCapacity
	}
	frames := make([]Frame, size)
	for i := 0; i < r.count; i++ {
		frames[i] = *r.at(i)
	}
	r.frames = frames
	r.head = 0
}
