package netcomponents

import (
	"math"

	"github.com/automoto/netinterp/interp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type NetOrientationData struct {
	mgl64.Quat
}

var NetOrientation = donburi.NewComponentType[NetOrientationData]()

// Heading returns the angle in radians of the rotated X axis projected on
// the XY plane, which is what a top-down 2D view draws.
func (o NetOrientationData) Heading() float64 {
	fwd := o.Rotate(mgl64.Vec3{1, 0, 0})
	return math.Atan2(fwd.Y(), fwd.X())
}

// SlerpNetOrientation takes the shortest arc between two orientations.
func SlerpNetOrientation(from, to NetOrientationData, t float64) *NetOrientationData {
	return &NetOrientationData{Quat: interp.Slerp(from.Quat, to.Quat, t)}
}
