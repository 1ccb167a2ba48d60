package geom

import "math"

type Vector4 struct {
	X Element
	Y Element
	Z Element
	W Element
}

type Quaternion = Vector4

func NewVector4(x, y, z, w float32) *Vector4 {
	return &Vector4{X: x, Y: y, Z: z, W: w}
}

func NewQuaternion(x, y, z, w float32) *Quaternion {
	return &Quaternion{X: x, Y: y, Z: z, W: w}
}

func NewIdentityQuaternion() *Quaternion {
	return &Quaternion{W: 1}
}

func NewQuaternionFromArray(arr [4]Element) *Quaternion {
	return &Quaternion{X: arr[0], Y: arr[1], Z: arr[2], W: arr[3]}
}

// NewQuaternionFromAxisAngle returns the rotation of rad radians about axis.
// A zero axis yields the identity.
func NewQuaternionFromAxisAngle(axis *Vector3, rad float64) *Quaternion {
	n, ok := axis.Normalized()
	if !ok {
		return NewIdentityQuaternion()
	}
	s, c := math.Sincos(rad / 2)
	return &Quaternion{
		X: Element(float64(n.X) * s),
		Y: Element(float64(n.Y) * s),
		Z: Element(float64(n.Z) * s),
		W: Element(c),
	}
}

// NewQuaternionFromMatrix4 extracts the rotation of the upper 3x3 part of mat.
// The branch is chosen on the trace or the largest diagonal element to keep the
// square root argument away from zero.
func NewQuaternionFromMatrix4(mat *Matrix4) *Quaternion {
	m00, m10, m20 := float64(mat[0]), float64(mat[1]), float64(mat[2])
	m01, m11, m21 := float64(mat[4]), float64(mat[5]), float64(mat[6])
	m02, m12, m22 := float64(mat[8]), float64(mat[9]), float64(mat[10])

	var x, y, z, w float64
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		w = 0.25 / s
		x = (m21 - m12) * s
		y = (m02 - m20) * s
		z = (m10 - m01) * s
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		w = (m21 - m12) / s
		x = 0.25 * s
		y = (m01 + m10) / s
		z = (m02 + m20) / s
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		w = (m02 - m20) / s
		x = (m01 + m10) / s
		y = 0.25 * s
		z = (m12 + m21) / s
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		w = (m10 - m01) / s
		x = (m02 + m20) / s
		y = (m12 + m21) / s
		z = 0.25 * s
	}
	return (&Quaternion{X: Element(x), Y: Element(y), Z: Element(z), W: Element(w)}).Normalize()
}

func (v *Vector4) Add(v2 *Vector4) *Vector4 {
	return &Vector4{X: v.X + v2.X, Y: v.Y + v2.Y, Z: v.Z + v2.Z, W: v.W + v2.W}
}

func (v *Vector4) Sub(v2 *Vector4) *Vector4 {
	return &Vector4{X: v.X - v2.X, Y: v.Y - v2.Y, Z: v.Z - v2.Z, W: v.W - v2.W}
}

func (v *Vector4) Scale(s Element) *Vector4 {
	return &Vector4{X: v.X * s, Y: v.Y * s, Z: v.Z * s, W: v.W * s}
}

func (v *Vector4) Dot(v2 *Vector4) Element {
	return v.X*v2.X + v.Y*v2.Y + v.Z*v2.Z + v.W*v2.W
}

func (v *Vector4) Len() Element {
	return Element(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W)))
}

func (v *Vector4) LenSqr() Element {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W
}

// Normalize normalizes v in place. A zero quaternion becomes the identity.
func (v *Vector4) Normalize() *Vector4 {
	l := v.Len()
	if l > 0 {
		v.X /= l
		v.Y /= l
		v.Z /= l
		v.W /= l
	} else {
		v.W = 1
	}
	return v
}

// Inverse returns the conjugate, which is the inverse of a unit quaternion.
func (v *Vector4) Inverse() *Vector4 {
	return &Vector4{X: -v.X, Y: -v.Y, Z: -v.Z, W: v.W}
}

// Returns Hamilton product
func (a *Vector4) Mul(b *Vector4) *Vector4 {
	return &Vector4{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z, // 1
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y, // i
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X, // j
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W, // k
	}
}

// ApplyTo rotates v by q.
func (q *Quaternion) ApplyTo(v *Vector3) *Vector3 {
	// v' = v + w*t + u x t, t = 2 * (u x v)
	u := &Vector3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// EqualsRotation reports whether q and q2 describe the same rotation within eps.
func (q *Quaternion) EqualsRotation(q2 *Quaternion, eps Element) bool {
	if q.Sub(q2).Len() <= eps {
		return true
	}
	return q.Add(q2).Len() <= eps
}

// IsNaN reports whether any component of q is NaN.
func (q *Quaternion) IsNaN() bool {
	return q.X != q.X || q.Y != q.Y || q.Z != q.Z || q.W != q.W
}

func (q *Quaternion) ToArray(a []Element) {
	a[0] = q.X
	a[1] = q.Y
	a[2] = q.Z
	a[3] = q.W
}
