package skeleton

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/binzume/mocapretarget/geom"
)

func TestSnapshot(t *testing.T) {
	s := NewSnapshot(time.Second, map[JointID]JointSample{
		SpineBase:   {Position: *geom.NewVector3(0, 0, 0), Tracking: Tracked},
		SpineMid:    {Position: *geom.NewVector3(0, 1, 0), Tracking: Inferred},
		Unspecified: {Position: *geom.NewVector3(9, 9, 9)},
	})

	if s.Len() != 2 || s.Time() != time.Second {
		t.Error("snapshot: ", s.Len(), s.Time())
	}
	// present at the origin is not the same as absent
	if !s.Has(SpineBase) || s.Has(Head) || s.Has(Unspecified) {
		t.Error("Has()")
	}
	if p, ok := s.Position(SpineBase); !ok || p.Len() != 0 {
		t.Error("Position(SpineBase): ", p, ok)
	}
	if p, ok := s.Position(Head); ok || p != nil {
		t.Error("Position(Head): ", p, ok)
	}
	if j, ok := s.Joint(SpineMid); !ok || j.Tracking != Inferred {
		t.Error("Joint(SpineMid): ", j, ok)
	}

	// the returned position is a copy
	p, _ := s.Position(SpineMid)
	p.X = 100
	if p2, _ := s.Position(SpineMid); p2.X != 0 {
		t.Error("snapshot was modified: ", p2)
	}

	s2 := s.Without(SpineMid)
	if s2.Has(SpineMid) || !s.Has(SpineMid) || !s2.Has(SpineBase) {
		t.Error("Without()")
	}
	if js := s2.Joints(); len(js) != 1 || js[0] != SpineBase {
		t.Error("Joints(): ", js)
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(time.Millisecond).SetPosition(Head, geom.NewVector3(0, 2, 0))
	s1 := b.Build()
	b.SetPosition(Neck, geom.NewVector3(0, 1.8, 0))
	s2 := b.Build()

	if s1.Has(Neck) || !s2.Has(Neck) || !s2.Has(Head) {
		t.Error("Build() should return independent snapshots")
	}
	if j, _ := s1.Joint(Head); j.Orientation != *geom.NewIdentityQuaternion() || j.Tracking != Tracked {
		t.Error("SetPosition: ", j)
	}
}

func TestSnapshotJSON(t *testing.T) {
	src := `{"time": 0.5, "joints": {
		"SpineBase": {"position": [0, 1, 0]},
		"head": {"position": [0, 2, 0.1], "orientation": [0, 0, 0, 1], "tracking": "Inferred"}
	}}`

	var s Snapshot
	if err := json.Unmarshal([]byte(src), &s); err != nil {
		t.Fatal(err)
	}
	if s.Time() != 500*time.Millisecond || s.Len() != 2 {
		t.Fatal("decoded: ", s.Time(), s.Joints())
	}
	if j, _ := s.Joint(SpineBase); j.Tracking != Tracked || j.Orientation.W != 1 || j.Position.Y != 1 {
		t.Error("SpineBase: ", j)
	}
	if j, _ := s.Joint(Head); j.Tracking != Inferred || j.Position.Z != 0.1 {
		t.Error("Head: ", j)
	}

	data, err := json.Marshal(&s)
	if err != nil {
		t.Fatal(err)
	}
	var s2 Snapshot
	if err := json.Unmarshal(data, &s2); err != nil {
		t.Fatal(err)
	}
	if s2 != s {
		t.Error("round trip: ", string(data))
	}

	if err := json.Unmarshal([]byte(`{"joints": {"Tail": {"position": [0, 0, 0]}}}`), &s2); err == nil {
		t.Error("unknown joint should be an error")
	}
}
