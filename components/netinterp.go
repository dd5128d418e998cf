package components

import (
	"github.com/automoto/netinterp/interp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// NetInterpData stores the interpolation buffer that turns server updates
// for a remote networked entity into a smooth per-frame pose.
type NetInterpData struct {
	Buffer   *interp.Buffer
	LastSeq  uint32     // newest update sequence accepted
	Received mgl64.Vec3 // position of the newest update, for debug drawing
	Updates  int
	Dropped  int // updates rejected as stale
}

var NetInterp = donburi.NewComponentType[NetInterpData]()
