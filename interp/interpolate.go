package interp

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Above this dot product two orientations are close enough that a
// normalised lerp is indistinguishable from a slerp and avoids dividing by
// a vanishing sine.
const nlerpThreshold = 0.9995

// Lerp linearly interpolates between two vectors. alpha is not clamped.
func Lerp(a, b mgl64.Vec3, alpha float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(alpha))
}

// Slerp interpolates between two orientations along the shortest arc and
// always returns a unit quaternion.
func Slerp(a, b mgl64.Quat, alpha float64) mgl64.Quat {
	a = a.Normalize()
	b = b.Normalize()

	dot := a.Dot(b)
	if dot < 0 {
		b = b.Scale(-1)
		dot = -dot
	}

	if dot > nlerpThreshold {
		return a.Add(b.Sub(a).Scale(alpha)).Normalize()
	}

	theta := math.Acos(dot) * alpha
	rel := b.Sub(a.Scale(dot)).Normalize()
	return a.Scale(math.Cos(theta)).Add(rel.Scale(math.Sin(theta))).Normalize()
}

// Hermite evaluates the cubic Hermite curve from p1 to p2 at t. The
// tangents v1 and v2 must already be scaled by the interval duration.
func Hermite(p1, p2, v1, v2 mgl64.Vec3, t float64) mgl64.Vec3 {
	t2 := t * t
	t3 := t2 * t

	a := 2*t3 - 3*t2 + 1
	b := -2*t3 + 3*t2
	c := t3 - 2*t2 + t
	d := t3 - t2

	return p1.Mul(a).Add(p2.Mul(b)).Add(v1.Mul(c)).Add(v2.Mul(d))
}
