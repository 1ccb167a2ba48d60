package gltfutil

import (
	"math"
	"testing"

	"github.com/binzume/mocapretarget/geom"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func testDocument() *gltf.Document {
	doc := gltf.NewDocument()
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "a"}, &gltf.Node{Name: "b"})
	keys := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0, 1, 2})
	s := float32(math.Sqrt(0.5))
	rotations := modeler.WriteTangent(doc, [][4]float32{{0, 0, 0, 1}, {0, s, 0, s}, {0, 1, 0, 0}})
	moveKeys := modeler.WriteAccessor(doc, gltf.TargetNone, []float32{0.5, 1.5})
	translations := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {2, 0, 0}})

	a := &gltf.Animation{Name: "test"}
	a.Samplers = []*gltf.AnimationSampler{
		{Input: gltf.Index(keys), Output: gltf.Index(rotations), Interpolation: gltf.InterpolationLinear},
		{Input: gltf.Index(moveKeys), Output: gltf.Index(translations), Interpolation: gltf.InterpolationLinear},
	}
	a.Channels = []*gltf.Channel{
		{Sampler: gltf.Index(0), Target: gltf.ChannelTarget{Node: gltf.Index(0), Path: gltf.TRSRotation}},
		{Sampler: gltf.Index(1), Target: gltf.ChannelTarget{Node: gltf.Index(1), Path: gltf.TRSTranslation}},
	}
	doc.Animations = append(doc.Animations, a)
	return doc
}

func TestReadAnimation(t *testing.T) {
	anim, err := ReadAnimation(testDocument(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if anim.Name != "test" || len(anim.Tracks) != 2 {
		t.Fatal("tracks", len(anim.Tracks))
	}
	keys := anim.Keys()
	want := []float32{0, 0.5, 1, 1.5, 2}
	if len(keys) != len(want) {
		t.Fatal("keys", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Error("keys", keys)
		}
	}

	rot := anim.Tracks[0]
	if _, ok := rot.TranslationAt(1); ok {
		t.Error("node 0 has no translation")
	}
	tests := []struct {
		t     float32
		angle float64
	}{
		{-1, 0}, {0, 0}, {0.5, 45}, {1, 90}, {1.5, 135}, {2, 180}, {3, 180},
	}
	for _, test := range tests {
		q, ok := rot.RotationAt(test.t)
		if !ok {
			t.Fatal("rotation")
		}
		expected := geom.NewQuaternionFromAxisAngle(geom.NewVector3(0, 1, 0), geom.DegToRad(test.angle))
		if !q.EqualsRotation(expected, 0.0001) {
			t.Errorf("RotationAt(%v) = %v, want %v", test.t, q, expected)
		}
	}

	move := anim.Tracks[1]
	for _, test := range []struct{ t, x float32 }{{0, 0}, {1, 1}, {1.5, 2}, {2, 2}} {
		p, ok := move.TranslationAt(test.t)
		if !ok || math.Abs(float64(p.X-test.x)) > 0.0001 {
			t.Errorf("TranslationAt(%v) = %v", test.t, p)
		}
	}
}

func TestReadAnimationErrors(t *testing.T) {
	doc := testDocument()
	if _, err := ReadAnimation(doc, 1); err == nil {
		t.Error("expected error for missing animation")
	}
	doc.Animations[0].Samplers[0].Interpolation = gltf.InterpolationCubicSpline
	if _, err := ReadAnimation(doc, 0); err == nil {
		t.Error("expected error for cubic spline")
	}
	doc = testDocument()
	doc.Accessors[0].ComponentType = gltf.ComponentUint
	if _, err := ReadAnimation(doc, 0); err == nil {
		t.Error("expected error for integer keys")
	}
}
