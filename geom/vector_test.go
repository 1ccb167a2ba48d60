package geom

import (
	"testing"
)

func Abs(v Element) Element {
	if v < 0 {
		return -v
	}
	return v
}

func TestVector3(t *testing.T) {
	zero := NewVector3(0, 0, 0)
	if zero.Len() != 0 || zero.LenSqr() != 0 || zero.Dot(zero) != 0 {
		t.Error("len != 0")
	}

	if _, ok := zero.Normalized(); ok {
		t.Error("zero vector has no direction")
	}

	if *NewVector3(0, 0, 0).Normalize() != *NewVector3(1, 0, 0) {
		t.Error("Normalize shoud returns unit vector.")
	}

	if *NewVector3(1, 0, 0).Add(NewVector3(0, 1, 0)) != *NewVector3(1, 1, 0) {
		t.Error("Vector.Add()")
	}

	if *NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0)) != *NewVector3(0, 0, 1) {
		t.Error("Vector.Cross()")
	}

	m := Midpoint(NewVector3(1, 0, 0), NewVector3(-1, 2, 0))
	if *m != *NewVector3(0, 1, 0) {
		t.Error("Midpoint()", m)
	}
}

func TestVector4(t *testing.T) {
	zero := NewVector4(0, 0, 0, 0)
	if zero.Len() != 0 || zero.LenSqr() != 0 || zero.Dot(zero) != 0 {
		t.Error("len != 0")
	}

	if *zero.Normalize() != *NewVector4(0, 0, 0, 1) {
		t.Error("Normalize shoud returns unit vector.", zero.Normalize())
	}

	if *NewVector4(1, 0, 0, 0).Add(NewVector4(0, 1, 0, 0)) != *NewVector4(1, 1, 0, 0) {
		t.Error("Vector.Add()")
	}
}
