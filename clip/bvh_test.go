package clip

import (
	"math"
	"testing"

	"github.com/binzume/mocapretarget/skeleton"
)

func TestToBVH(t *testing.T) {
	c := chainClip(t, 0, 90)
	m, err := ToBVH(c, 2)
	if err != nil {
		t.Fatal(err)
	}
	if m.Root.Name != "SpineBase" || len(m.Root.Children) != 1 || m.Root.Children[0].Offset != [3]float64{0, 100, 0} {
		t.Fatal("hierarchy", m.Root)
	}
	if len(m.Frames) != 3 || m.FrameTime != 0.5 || m.ChannelCount() != 12 {
		t.Fatal("frames", len(m.Frames), m.FrameTime, m.ChannelCount())
	}
	// SpineMid Zrotation follows the six root channels
	for i, want := range []float64{0, -45, -90} {
		if v := m.Frames[i][6]; math.Abs(v-want) > 0.01 {
			t.Errorf("frame %d: %v, want %v", i, v, want)
		}
	}
	tip := m.Root.Children[0].Children[0]
	if len(tip.Children) != 0 || math.Abs(tip.EndSite[1]-10) > 0.0001 {
		t.Error("end site", tip.EndSite)
	}

	if _, err := ToBVH(&Clip{Name: "empty", Structure: c.Structure, Rest: c.Rest}, 30); err == nil {
		t.Error("expected error for empty clip")
	}
}

func TestBVHHierarchyOrder(t *testing.T) {
	solver := profileSolver(t, "kinect2")
	c := &Clip{Structure: solver.Structure(), Rest: solver.Rest()}
	root, order := bvhHierarchy(c)
	if root.Name != "SpineBase" || len(order) != skeleton.JointCount || order[0] != skeleton.SpineBase {
		t.Fatal("order", root.Name, order)
	}
	// depth first: every joint comes after its parent
	pos := map[skeleton.JointID]int{}
	for i, j := range order {
		pos[j] = i
	}
	for _, j := range order[1:] {
		if pos[c.Structure.Parent(j)] >= pos[j] {
			t.Error("parent after child", j)
		}
	}
}
