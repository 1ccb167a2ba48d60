package clip

import (
	"fmt"

	"github.com/binzume/mocapretarget/bvh"
	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

// BVHScale converts rig meters to bvh centimeters.
const BVHScale = 100

// BVHEndSite is the length of end sites in rig meters.
const BVHEndSite = 0.1

func bvhVector(v *geom.Vector3, scale float64) [3]float64 {
	return [3]float64{float64(v.X) * scale, float64(v.Y) * scale, float64(v.Z) * scale}
}

// bvhHierarchy returns the root joint and the rig joints in bvh channel order.
func bvhHierarchy(c *Clip) (*bvh.Joint, []skeleton.JointID) {
	joints := map[skeleton.JointID]*bvh.Joint{}
	var root *bvh.Joint
	for _, j := range c.Structure.Joints() {
		rj, _ := c.Rest.Joint(j)
		end := rj.Direction
		if end.LenSqr() == 0 {
			// extremities continue along their own bone
			if n, ok := rj.Position.Normalized(); ok {
				end = *n
			}
		}
		bj := &bvh.Joint{
			Name:     j.String(),
			Offset:   bvhVector(&rj.Position, BVHScale),
			Channels: bvh.JointChannels,
			EndSite:  bvhVector(&end, BVHScale*BVHEndSite),
		}
		joints[j] = bj
		if p := c.Structure.Parent(j); p != skeleton.Unspecified {
			joints[p].Children = append(joints[p].Children, bj)
		} else {
			bj.Channels = bvh.RootChannels
			root = bj
		}
	}

	byJoint := map[*bvh.Joint]skeleton.JointID{}
	for j, bj := range joints {
		byJoint[bj] = j
	}
	var order []skeleton.JointID
	(&bvh.Motion{Root: root}).Walk(func(bj *bvh.Joint, depth int) {
		order = append(order, byJoint[bj])
	})
	return root, order
}

// ToBVH resamples the clip at fps and converts it to a bvh motion with ZXY
// Euler channels in degrees.
func ToBVH(c *Clip, fps float64) (*bvh.Motion, error) {
	if len(c.Frames) == 0 {
		return nil, fmt.Errorf("clip %q has no frames", c.Name)
	}
	r, err := Resample(c, fps)
	if err != nil {
		return nil, err
	}
	root, order := bvhHierarchy(c)
	m := &bvh.Motion{Root: root, FrameTime: 1 / fps}
	rootID := c.Structure.Root()
	for _, f := range r.Frames {
		var values []float64
		for _, j := range order {
			rj, _ := f.Pose.Joint(j)
			if j == rootID {
				p := bvhVector(&rj.Position, BVHScale)
				values = append(values, p[:]...)
			}
			e := geom.NewEulerFromQuaternion(&rj.Rotation, geom.RotationOrderZXY)
			values = append(values,
				geom.RadToDeg(float64(e.Z)),
				geom.RadToDeg(float64(e.X)),
				geom.RadToDeg(float64(e.Y)))
		}
		m.Frames = append(m.Frames, values)
	}
	return m, nil
}

func SaveBVH(c *Clip, fps float64, path string) error {
	m, err := ToBVH(c, fps)
	if err != nil {
		return err
	}
	return bvh.Save(m, path)
}
