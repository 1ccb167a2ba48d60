package clip

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/binzume/mocapretarget/gltfutil"
	"github.com/binzume/mocapretarget/skeleton"
	"github.com/binzume/mocapretarget/vrm"
	"github.com/qmuntal/gltf"
)

func TestToGLTF(t *testing.T) {
	c := chainClip(t, 0, 45, 90)

	doc, err := ToGLTF(c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 3 {
		t.Fatal("nodes", len(doc.Nodes))
	}
	if len(doc.Scenes[0].Nodes) != 1 || doc.Nodes[doc.Scenes[0].Nodes[0]].Name != "SpineBase" {
		t.Error("scene root", doc.Scenes[0].Nodes)
	}
	if len(doc.Nodes[0].Children) != 1 || doc.Nodes[1].Name != "SpineMid" || doc.Nodes[1].Translation != [3]float32{0, 1, 0} {
		t.Error("hierarchy", doc.Nodes[0].Children, doc.Nodes[1])
	}
	if len(doc.Animations) != 1 {
		t.Fatal("animations", len(doc.Animations))
	}
	a := doc.Animations[0]
	if a.Name != "bend" || len(a.Channels) != 1 {
		t.Fatal("channels", len(a.Channels))
	}
	ch := a.Channels[0]
	if *ch.Target.Node != 1 || ch.Target.Path != gltf.TRSRotation {
		t.Error("channel target", ch.Target)
	}
	input := doc.Accessors[*a.Samplers[*ch.Sampler].Input]
	if input.Count != 3 || input.Min[0] != 0 || input.Max[0] != 2 {
		t.Error("keys", input.Count, input.Min, input.Max)
	}
	if _, ok := doc.Extensions[vrm.ExtensionName]; ok {
		t.Error("humanoid extension not requested")
	}
}

func TestToGLTFResampledKeys(t *testing.T) {
	c := chainClip(t, 0, 90)
	for _, fps := range []float64{3, 24, 30, 60} {
		r, err := Resample(c, fps)
		if err != nil {
			t.Fatal(err)
		}
		doc, err := ToGLTF(r, nil)
		if err != nil {
			t.Fatal(err)
		}
		anim, err := gltfutil.ReadAnimation(doc, 0)
		if err != nil {
			t.Fatal(err)
		}
		track, ok := anim.Tracks[1]
		if !ok {
			t.Fatal("no track for SpineMid", fps)
		}
		keys := track.RotationKeys
		if len(keys) != int(fps)+1 || keys[len(keys)-1] != 1 {
			t.Error("keys", fps, len(keys), keys[len(keys)-1])
		}
		for i := 1; i < len(keys); i++ {
			if keys[i] <= keys[i-1] {
				t.Errorf("fps %v: keys not strictly increasing at %d: %v %v", fps, i, keys[i-1], keys[i])
			}
		}
	}
}

func TestToGLTFHumanoid(t *testing.T) {
	solver := profileSolver(t, "kinect2")
	seq := NewSequencer("noise", solver, SkipFrame)
	for _, s := range noisySnapshots(solver.Rest(), 5, 0.05) {
		if err := seq.Add(s); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := WriteGLB(seq.Clip(), &buf, &GLTFOptions{Humanoid: true, Author: "test"}); err != nil {
		t.Fatal(err)
	}
	doc, err := vrm.Parse(&buf, "noise.glb")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Nodes) != 25 || len(doc.Animations) != 1 {
		t.Fatal("nodes", len(doc.Nodes), len(doc.Animations))
	}
	if err := doc.ValidateBones(); err != nil {
		t.Error(err)
	}
	ext := doc.VRM()
	if ext.Meta.Author != "test" || len(ext.Humanoid.Bones) != 25 {
		t.Error("humanoid", ext.Meta, len(ext.Humanoid.Bones))
	}
	if n, ok := ext.Bone("hips"); !ok || doc.Nodes[n].Name != "SpineBase" {
		t.Error("hips", n, ok)
	}
	for _, ch := range doc.Animations[0].Channels {
		if ch.Target.Path == gltf.TRSTranslation {
			t.Error("unexpected translation channel", *ch.Target.Node)
		}
	}
}

func TestSaveGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bend.glb")
	if err := SaveGLB(chainClip(t, 0, 30), path, nil); err != nil {
		t.Fatal(err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Animations) != 1 {
		t.Error("animations", len(doc.Animations))
	}
}

func TestFromGLTF(t *testing.T) {
	c := chainClip(t, 0, 45, 90)
	var buf bytes.Buffer
	if err := WriteGLB(c, &buf, nil); err != nil {
		t.Fatal(err)
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(&buf).Decode(doc); err != nil {
		t.Fatal(err)
	}

	loaded, err := FromGLTF(doc, 0, c.Structure, c.Rest)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "bend" || len(loaded.Frames) != len(c.Frames) {
		t.Fatal("frames", len(loaded.Frames))
	}
	for i, f := range loaded.Frames {
		if f.Time != c.Frames[i].Time {
			t.Error("time", i, f.Time)
		}
		for _, j := range c.Structure.Joints() {
			a, _ := f.Pose.Joint(j)
			b, _ := c.Frames[i].Pose.Joint(j)
			if !a.Rotation.EqualsRotation(&b.Rotation, eps) || a.WorldPosition().Sub(b.WorldPosition()).Len() > eps {
				t.Error("pose", i, j)
			}
		}
	}

	if _, err := FromGLTF(doc, 1, c.Structure, c.Rest); err == nil {
		t.Error("expected error for missing animation")
	}
	doc.Nodes[1].Name = "Spine"
	if _, err := FromGLTF(doc, 0, c.Structure, c.Rest); err == nil {
		t.Error("expected error when no joint is animated")
	}
}

func TestFromGLTFHumanoidNames(t *testing.T) {
	c := chainClip(t, 0, 60)
	doc, err := ToGLTF(c, &GLTFOptions{Humanoid: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range doc.Nodes {
		n.Name = "bone_" + n.Name
	}
	path := filepath.Join(t.TempDir(), "renamed.vrm")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadGLTF(path, c.Structure, c.Rest)
	if err != nil {
		t.Fatal(err)
	}
	if a := jointAngle(t, loaded, loaded.Frames[1].Pose, skeleton.SpineMid); a < 59.99 || a > 60.01 {
		t.Error("angle", a)
	}
}
