package geom

import (
	"math"
	"testing"
)

func TestSlerp(t *testing.T) {
	const eps = 0.0001

	a := NewIdentityQuaternion()
	b := NewQuaternionFromAxisAngle(NewVector3(0, 1, 0), math.Pi/2)

	if !Slerp(a, b, 0).EqualsRotation(a, eps) {
		t.Error("t=0")
	}
	if !Slerp(a, b, 1).EqualsRotation(b, eps) {
		t.Error("t=1")
	}
	half := NewQuaternionFromAxisAngle(NewVector3(0, 1, 0), math.Pi/4)
	if q := Slerp(a, b, 0.5); !q.EqualsRotation(half, eps) {
		t.Error("t=0.5: ", q, half)
	}

	// -b is the same rotation; the shorter arc must still be taken.
	nb := &Quaternion{X: -b.X, Y: -b.Y, Z: -b.Z, W: -b.W}
	if q := Slerp(a, nb, 0.5); !q.EqualsRotation(half, eps) {
		t.Error("negated endpoint: ", q, half)
	}

	if q := Slerp(b, b, 0.3); !q.EqualsRotation(b, eps) || q.IsNaN() {
		t.Error("same endpoints: ", q)
	}
}
