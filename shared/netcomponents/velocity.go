package netcomponents

import (
	"github.com/automoto/netinterp/interp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// NetVelocityData is the velocity of the frame a remote entity is
// currently playing from, in units per millisecond.
type NetVelocityData struct {
	SpeedX, SpeedY, SpeedZ float64
}

var NetVelocity = donburi.NewComponentType[NetVelocityData]()

func NewNetVelocity(v mgl64.Vec3) NetVelocityData {
	return NetVelocityData{SpeedX: v.X(), SpeedY: v.Y(), SpeedZ: v.Z()}
}

func (v NetVelocityData) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.SpeedX, v.SpeedY, v.SpeedZ}
}

func LerpNetVelocity(from, to NetVelocityData, t float64) *NetVelocityData {
	v := NewNetVelocity(interp.Lerp(from.Vec3(), to.Vec3(), t))
	return &v
}
