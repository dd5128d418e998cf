package netcomponents

import (
	"github.com/automoto/netinterp/interp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// NetPositionData is the rendered position of a remote entity.
type NetPositionData struct {
	X, Y, Z float64
}

var NetPosition = donburi.NewComponentType[NetPositionData]()

func NewNetPosition(v mgl64.Vec3) NetPositionData {
	return NetPositionData{X: v.X(), Y: v.Y(), Z: v.Z()}
}

func (p NetPositionData) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// LerpNetPosition interpolates between two positions
func LerpNetPosition(from, to NetPositionData, t float64) *NetPositionData {
	p := NewNetPosition(interp.Lerp(from.Vec3(), to.Vec3(), t))
	return &p
}
