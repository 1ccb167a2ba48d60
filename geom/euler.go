package geom

import "math"

type RotationOrder int

const (
	RotationOrderXYZ RotationOrder = iota
	RotationOrderYXZ
	RotationOrderZXY
	RotationOrderZYX
)

// EulerAngles holds intrinsic rotations in radians applied in Order.
type EulerAngles struct {
	Vector3
	Order RotationOrder
}

func NewEuler(x, y, z float32, order RotationOrder) *EulerAngles {
	return &EulerAngles{Vector3: Vector3{x, y, z}, Order: order}
}

func NewEulerFromQuaternion(q *Quaternion, order RotationOrder) *EulerAngles {
	return NewEulerFromMatrix4(NewRotationMatrix4FromQuaternion(q), order)
}

func NewEulerFromMatrix4(mat *Matrix4, order RotationOrder) *EulerAngles {
	const eps = 0.000001
	m11, m21, m31 := float64(mat[0]), float64(mat[1]), float64(mat[2])
	m12, m22, m32 := float64(mat[4]), float64(mat[5]), float64(mat[6])
	m13, m23, m33 := float64(mat[8]), float64(mat[9]), float64(mat[10])

	ret := &EulerAngles{Order: order}
	switch order {
	case RotationOrderXYZ:
		ret.Y = Element(math.Asin(math.Max(-1, math.Min(m13, 1))))
		if math.Abs(m13) < 1-eps {
			ret.X = Element(math.Atan2(-m23, m33))
			ret.Z = Element(math.Atan2(-m12, m11))
		} else {
			ret.X = Element(math.Atan2(m32, m22))
			ret.Z = 0
		}
	case RotationOrderYXZ:
		ret.X = Element(math.Asin(-math.Max(-1, math.Min(m23, 1))))
		if math.Abs(m23) < 1-eps {
			ret.Y = Element(math.Atan2(m13, m33))
			ret.Z = Element(math.Atan2(m21, m22))
		} else {
			ret.Y = Element(math.Atan2(-m31, m11))
			ret.Z = 0
		}
	case RotationOrderZXY:
		ret.X = Element(math.Asin(math.Max(-1, math.Min(m32, 1))))
		if math.Abs(m32) < 1-eps {
			ret.Y = Element(math.Atan2(-m31, m33))
			ret.Z = Element(math.Atan2(-m12, m22))
		} else {
			ret.Z = Element(math.Atan2(m21, m11))
			ret.Y = 0
		}
	case RotationOrderZYX:
		ret.Y = Element(math.Asin(-math.Max(-1, math.Min(m31, 1))))
		if math.Abs(m31) < 1-eps {
			ret.X = Element(math.Atan2(m32, m33))
			ret.Z = Element(math.Atan2(m21, m11))
		} else {
			ret.X = 0
			ret.Z = Element(math.Atan2(-m12, m22))
		}
	}
	return ret
}

func (v *EulerAngles) ToQuaternion() *Quaternion {
	cx := math.Cos(float64(v.X / 2))
	cy := math.Cos(float64(v.Y / 2))
	cz := math.Cos(float64(v.Z / 2))
	sx := math.Sin(float64(v.X / 2))
	sy := math.Sin(float64(v.Y / 2))
	sz := math.Sin(float64(v.Z / 2))

	switch v.Order {
	case RotationOrderXYZ:
		return &Vector4{
			X: float32(sx*cy*cz + cx*sy*sz),
			Y: float32(cx*sy*cz - sx*cy*sz),
			Z: float32(cx*cy*sz + sx*sy*cz),
			W: float32(cx*cy*cz - sx*sy*sz)}
	case RotationOrderYXZ:
		return &Vector4{
			X: float32(sx*cy*cz + cx*sy*sz),
			Y: float32(cx*sy*cz - sx*cy*sz),
			Z: float32(cx*cy*sz - sx*sy*cz),
			W: float32(cx*cy*cz + sx*sy*sz)}
	case RotationOrderZXY:
		return &Vector4{
			X: float32(sx*cy*cz - cx*sy*sz),
			Y: float32(cx*sy*cz + sx*cy*sz),
			Z: float32(cx*cy*sz + sx*sy*cz),
			W: float32(cx*cy*cz - sx*sy*sz)}
	case RotationOrderZYX:
		return &Vector4{
			X: float32(sx*cy*cz - cx*sy*sz),
			Y: float32(cx*sy*cz + sx*cy*sz),
			Z: float32(cx*cy*sz - sx*sy*cz),
			W: float32(cx*cy*cz + sx*sy*sz)}
	default:
		return &Quaternion{0, 0, 0, 1}
	}
}

// HeadingAttitudeBank is the right-handed Euler convention of legacy NUI
// skeleton streams: heading about Y, then attitude about Z, then bank about X,
// all in radians.
type HeadingAttitudeBank struct {
	Heading  float64
	Attitude float64
	Bank     float64
}

// singularityThreshold is the x*y+z*w value beyond which attitude is treated as ±90°.
const singularityThreshold = 0.499

func (e HeadingAttitudeBank) ToQuaternion() *Quaternion {
	s1, c1 := math.Sincos(e.Heading / 2)
	s2, c2 := math.Sincos(e.Attitude / 2)
	s3, c3 := math.Sincos(e.Bank / 2)
	return &Quaternion{
		X: Element(s1*s2*c3 + c1*c2*s3),
		Y: Element(s1*c2*c3 + c1*s2*s3),
		Z: Element(c1*s2*c3 - s1*c2*s3),
		W: Element(c1*c2*c3 - s1*s2*s3),
	}
}

// NewHeadingAttitudeBank decomposes q. Near attitude ±90° bank is folded into
// heading and returned as zero.
func NewHeadingAttitudeBank(q *Quaternion) HeadingAttitudeBank {
	x, y, z, w := float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)
	sqx, sqy, sqz, sqw := x*x, y*y, z*z, w*w
	unit := sqx + sqy + sqz + sqw
	if unit == 0 {
		return HeadingAttitudeBank{}
	}
	test := x*y + z*w
	if test > singularityThreshold*unit {
		return HeadingAttitudeBank{Heading: 2 * math.Atan2(x, w), Attitude: math.Pi / 2}
	}
	if test < -singularityThreshold*unit {
		return HeadingAttitudeBank{Heading: -2 * math.Atan2(x, w), Attitude: -math.Pi / 2}
	}
	return HeadingAttitudeBank{
		Heading:  math.Atan2(2*y*w-2*x*z, sqx-sqy-sqz+sqw),
		Attitude: math.Asin(2 * test / unit),
		Bank:     math.Atan2(2*x*w-2*y*z, -sqx+sqy-sqz+sqw),
	}
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
