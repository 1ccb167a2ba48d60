package rig

import (
	"math"
	"testing"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

func TestRestPose(t *testing.T) {
	const eps = 0.00001

	for _, name := range []string{"kinect2", "mmd"} {
		conf, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		s, pose, err := Build(conf)
		if err != nil {
			t.Fatal(name, err)
		}

		for _, j := range s.Joints() {
			rj, ok := pose.Joint(j)
			if !ok {
				t.Fatal(name, " missing joint: ", j)
			}
			p := s.Parent(j)
			if p == skeleton.Unspecified {
				if rj.World != rj.Local {
					t.Error(name, " root world != local")
				}
				continue
			}
			parent, _ := pose.World(p)
			if *parent.Mul(&rj.Local) != rj.World {
				t.Error(name, " world != parent * local: ", j)
			}
		}

		head, _ := pose.Joint(skeleton.Head)
		if head.WorldPosition().Sub(geom.NewVector3(0, 1.72, 0)).Len() > eps {
			t.Error(name, " head: ", head.WorldPosition())
		}
	}
}

func TestRestDirection(t *testing.T) {
	const eps = 0.00001

	conf, _ := Lookup("mmd")
	s, pose, err := Build(conf)
	if err != nil {
		t.Fatal(err)
	}
	if s.IsInStructure(skeleton.ThumbLeft) || !s.IsPassthrough(skeleton.Neck) || !s.IsExtremity(skeleton.HandLeft) {
		t.Error("mmd structure")
	}

	// the A-pose arm points 35 degrees below the horizon
	sh, _ := pose.Joint(skeleton.ShoulderLeft)
	el, _ := pose.Joint(skeleton.ElbowLeft)
	arm := el.WorldPosition().Sub(sh.WorldPosition())
	a := 35 * math.Pi / 180
	expected := geom.NewVector3(float32(math.Cos(a)), float32(-math.Sin(a)), 0)
	if n, _ := arm.Normalized(); n.Sub(expected).Len() > eps {
		t.Error("arm: ", n, expected)
	}
	// direction is local to the joint frame
	if sh.Direction.Sub(geom.NewVector3(1, 0, 0)).Len() > eps {
		t.Error("direction: ", sh.Direction)
	}

	base, _ := pose.Joint(skeleton.SpineBase)
	if base.Direction.Sub(geom.NewVector3(0, 1, 0)).Len() > eps {
		t.Error("explicit direction: ", base.Direction)
	}
}

func TestPoseSnapshot(t *testing.T) {
	conf := mustParse(t, chainConfig)
	_, pose, err := Build(conf)
	if err != nil {
		t.Fatal(err)
	}
	snap := pose.Snapshot()
	if snap.Len() != 3 {
		t.Fatal(snap.Joints())
	}
	if p, _ := snap.Position(skeleton.SpineShoulder); p.Sub(geom.NewVector3(0, 2, 0)).Len() > 0.00001 {
		t.Error(p)
	}

	c := pose.Clone()
	c.Set(skeleton.Head, NewRigJoint(geom.NewVector3(0, 0, 0), geom.NewIdentityQuaternion(), geom.NewVector3(0, 1, 0)))
	if pose.Has(skeleton.Head) || !c.Has(skeleton.Head) {
		t.Error("Clone()")
	}
}
