package geom

import "math"

// antiParallelEpsilon bounds 1+cos(angle) below which a and b are treated as opposite.
const antiParallelEpsilon = 1e-10

// ShortestArc returns the minimal rotation that maps the direction of a onto
// the direction of b. Zero-length inputs yield the identity. For opposite
// directions the axis is taken perpendicular to a, using the basis axis
// on which a has the smallest component, so the result is deterministic.
func ShortestArc(a, b *Vector3) *Quaternion {
	ax, ay, az, ok1 := unit64(a)
	bx, by, bz, ok2 := unit64(b)
	if !ok1 || !ok2 {
		return NewIdentityQuaternion()
	}

	d := ax*bx + ay*by + az*bz
	if d >= 1 {
		return NewIdentityQuaternion()
	}
	if 1+d < antiParallelEpsilon {
		px, py, pz := perpendicular(ax, ay, az)
		return &Quaternion{X: Element(px), Y: Element(py), Z: Element(pz), W: 0}
	}

	cx := ay*bz - az*by
	cy := az*bx - ax*bz
	cz := ax*by - ay*bx
	w := 1 + d
	l := math.Sqrt(cx*cx + cy*cy + cz*cz + w*w)
	return &Quaternion{
		X: Element(cx / l),
		Y: Element(cy / l),
		Z: Element(cz / l),
		W: Element(w / l),
	}
}

func unit64(v *Vector3) (float64, float64, float64, bool) {
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	l := math.Sqrt(x*x + y*y + z*z)
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return 0, 0, 0, false
	}
	return x / l, y / l, z / l, true
}

// perpendicular returns a unit vector orthogonal to the unit vector (x, y, z).
func perpendicular(x, y, z float64) (float64, float64, float64) {
	ex, ey, ez := 1.0, 0.0, 0.0
	if math.Abs(y) < math.Abs(x) && math.Abs(y) <= math.Abs(z) {
		ex, ey, ez = 0, 1, 0
	} else if math.Abs(z) < math.Abs(x) && math.Abs(z) < math.Abs(y) {
		ex, ey, ez = 0, 0, 1
	}
	// (x, y, z) x e
	px := y*ez - z*ey
	py := z*ex - x*ez
	pz := x*ey - y*ex
	l := math.Sqrt(px*px + py*py + pz*pz)
	return px / l, py / l, pz / l
}
