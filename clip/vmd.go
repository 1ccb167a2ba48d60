package clip

import (
	"io"
	"log"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/mmd"
	"github.com/binzume/mocapretarget/rig"
	"github.com/binzume/mocapretarget/skeleton"
)

func worldRotation(p *rig.Pose, j skeleton.JointID) *geom.Quaternion {
	w, ok := p.World(j)
	if !ok {
		return geom.NewIdentityQuaternion()
	}
	_, r, _ := w.Decompose()
	return r
}

// ToVMD converts the clip to MMD key frames. Each bone gets the rotation of
// its joint relative to the rest pose, so the target model is expected to
// share the rest pose of the rig. Only the root bone moves.
func ToVMD(c *Clip, modelName string) *mmd.Motion {
	motion := &mmd.Motion{ModelName: modelName}
	if len(c.Frames) == 0 {
		return motion
	}

	joints := c.Structure.Joints()
	restRotations := map[skeleton.JointID]*geom.Quaternion{}
	for _, j := range joints {
		restRotations[j] = worldRotation(c.Rest, j).Inverse()
	}
	root := c.Structure.Root()
	restRoot, _ := c.Rest.Joint(root)

	identity := geom.NewIdentityQuaternion()
	channels := map[skeleton.JointID][]*mmd.BoneFrame{}
	moved := map[skeleton.JointID]bool{}
	start := c.Frames[0].Time
	lastFrame := -1
	for _, f := range c.Frames {
		frame := mmd.FrameNumber(f.Time - start)
		if int(frame) == lastFrame {
			continue
		}
		lastFrame = int(frame)

		global := map[skeleton.JointID]*geom.Quaternion{}
		for _, j := range joints {
			g := worldRotation(f.Pose, j).Mul(restRotations[j]).Normalize()
			global[j] = g

			name, ok := mmd.BoneName(j)
			if !ok {
				continue
			}
			local := g
			if p := c.Structure.Parent(j); p != skeleton.Unspecified {
				local = global[p].Inverse().Mul(g).Normalize()
			}
			bf := &mmd.BoneFrame{
				Bone:          name,
				Frame:         frame,
				Rotation:      mmd.ToMMDRotation(local),
				Interpolation: mmd.LinearInterpolation,
			}
			if j == root {
				rj, _ := f.Pose.Joint(j)
				bf.Position = mmd.ToMMDPosition(rj.WorldPosition().Sub(restRoot.WorldPosition()))
			}
			if !bf.Rotation.EqualsRotation(identity, geom.Epsilon) || bf.Position.Len() > geom.Epsilon {
				moved[j] = true
			}
			channels[j] = append(channels[j], bf)
		}
	}

	for _, j := range joints {
		if moved[j] {
			motion.Bones = append(motion.Bones, channels[j]...)
		}
	}
	return motion
}

func SaveVMD(c *Clip, modelName, path string) error {
	motion := ToVMD(c, modelName)
	log.Println("VMD bone frames:", len(motion.Bones))
	return mmd.Save(motion, path)
}

func WriteVMD(c *Clip, modelName string, w io.Writer) error {
	return mmd.Write(w, ToVMD(c, modelName))
}
