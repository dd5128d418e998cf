package netcomponents

import (
	"github.com/automoto/netinterp/interp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type NetScaleData struct {
	X, Y, Z float64
}

var NetScale = donburi.NewComponentType[NetScaleData]()

func NewNetScale(v mgl64.Vec3) NetScaleData {
	return NetScaleData{X: v.X(), Y: v.Y(), Z: v.Z()}
}

func (s NetScaleData) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{s.X, s.Y, s.Z}
}

func LerpNetScale(from, to NetScaleData, t float64) *NetScaleData {
	s := NewNetScale(interp.Lerp(from.Vec3(), to.Vec3(), t))
	return &s
}
