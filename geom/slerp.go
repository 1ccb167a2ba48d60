package geom

import "gonum.org/v1/gonum/num/quat"

func toNumber(q *Quaternion) quat.Number {
	return quat.Number{Real: float64(q.W), Imag: float64(q.X), Jmag: float64(q.Y), Kmag: float64(q.Z)}
}

func fromNumber(n quat.Number) *Quaternion {
	return &Quaternion{X: Element(n.Imag), Y: Element(n.Jmag), Z: Element(n.Kmag), W: Element(n.Real)}
}

// Slerp interpolates between unit quaternions a and b along the shorter arc.
// t=0 returns a, t=1 returns b (or -b).
func Slerp(a, b *Quaternion, t float64) *Quaternion {
	qa, qb := toNumber(a), toNumber(b)
	if a.Dot(b) < 0 {
		qb = quat.Scale(-1, qb)
	}
	// a * (a^-1 * b)^t
	d := quat.Mul(quat.Conj(qa), qb)
	r := quat.Mul(qa, quat.PowReal(d, t))
	return fromNumber(r).Normalize()
}
