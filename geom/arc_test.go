package geom

import (
	"math"
	"math/rand"
	"testing"
)

func checkArc(t *testing.T, a, b *Vector3) {
	t.Helper()
	const eps = 0.0001

	q := ShortestArc(a, b)
	if q.IsNaN() {
		t.Fatal("NaN: ", a, b)
	}
	if Abs(q.Len()-1) > eps {
		t.Fatal("not a unit quaternion: ", q)
	}
	an, _ := a.Normalized()
	bn, _ := b.Normalized()
	if r := q.ApplyTo(an); r.Sub(bn).Len() > eps {
		t.Fatal("a is not rotated onto b: ", a, b, r)
	}
}

func TestShortestArcRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		checkArc(t, randomUnitVector(rnd), randomUnitVector(rnd))
	}
}

func TestShortestArcNearParallel(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := randomUnitVector(rnd)
		d := randomUnitVector(rnd).Scale(Element(math.Pow(10, -float64(1+rnd.Intn(6)))))
		checkArc(t, a, a.Add(d))
		checkArc(t, a, a.Scale(-1).Add(d))
	}
}

func TestShortestArcAntiParallel(t *testing.T) {
	rnd := rand.New(rand.NewSource(9))
	vs := []*Vector3{
		NewVector3(1, 0, 0), NewVector3(0, 1, 0), NewVector3(0, 0, 1),
		NewVector3(0, -1, 0), NewVector3(1, 1, 1),
	}
	for i := 0; i < 100; i++ {
		vs = append(vs, randomUnitVector(rnd))
	}
	for _, a := range vs {
		checkArc(t, a, a.Scale(-1))

		q1 := ShortestArc(a, a.Scale(-1))
		q2 := ShortestArc(a, a.Scale(-1))
		if *q1 != *q2 {
			t.Error("not deterministic: ", q1, q2)
		}
		if Abs(q1.W) > 0.0001 {
			t.Error("expected a half turn: ", q1)
		}
	}
}

func TestShortestArcDegenerate(t *testing.T) {
	for _, c := range [][2]*Vector3{
		{NewVector3(0, 0, 0), NewVector3(0, 1, 0)},
		{NewVector3(0, 1, 0), NewVector3(0, 0, 0)},
		{NewVector3(0, 0, 0), NewVector3(0, 0, 0)},
		{NewVector3(0, 2, 0), NewVector3(0, 5, 0)},
	} {
		q := ShortestArc(c[0], c[1])
		if *q != *NewIdentityQuaternion() {
			t.Error("expected identity: ", c, q)
		}
	}
}

func TestShortestArcAngle(t *testing.T) {
	q := ShortestArc(NewVector3(0, 1, 0), NewVector3(1, 1, 0))
	expected := NewQuaternionFromAxisAngle(NewVector3(0, 0, -1), math.Pi/4)
	if !q.EqualsRotation(expected, 0.00001) {
		t.Error("45deg: ", q, expected)
	}
}
