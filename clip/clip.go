// Package clip turns a stream of captured snapshots into a timed sequence of
// retargeted poses and exports it.
package clip

import (
	"time"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/rig"
	"github.com/binzume/mocapretarget/skeleton"
)

// Frame is one retargeted pose of a clip.
type Frame struct {
	Time time.Duration
	Pose *rig.Pose
	// Held is set when the pose was repeated from the previous frame.
	Held bool
}

// Clip is a sequence of poses of one rig with strictly increasing times.
type Clip struct {
	Name      string
	Structure *rig.Structure
	Rest      *rig.Pose
	Frames    []*Frame
}

// Duration returns the time between the first and the last frame.
func (c *Clip) Duration() time.Duration {
	if len(c.Frames) == 0 {
		return 0
	}
	return c.Frames[len(c.Frames)-1].Time - c.Frames[0].Time
}

// Rotations returns the local rotation of j for every frame.
func (c *Clip) Rotations(j skeleton.JointID) []*geom.Quaternion {
	rotations := make([]*geom.Quaternion, len(c.Frames))
	for i, f := range c.Frames {
		rj, ok := f.Pose.Joint(j)
		if !ok {
			rj, _ = c.Rest.Joint(j)
		}
		r := rj.Rotation
		rotations[i] = &r
	}
	return rotations
}

// Translations returns the local position of j for every frame.
func (c *Clip) Translations(j skeleton.JointID) []*geom.Vector3 {
	translations := make([]*geom.Vector3, len(c.Frames))
	for i, f := range c.Frames {
		rj, ok := f.Pose.Joint(j)
		if !ok {
			rj, _ = c.Rest.Joint(j)
		}
		p := rj.Position
		translations[i] = &p
	}
	return translations
}

// PoseAt returns the pose at t. Rotations are interpolated with slerp and
// positions linearly between the surrounding frames. Times outside the clip
// are clamped.
func (c *Clip) PoseAt(t time.Duration) *rig.Pose {
	n := len(c.Frames)
	if n == 0 {
		return c.Rest.Clone()
	}
	if t <= c.Frames[0].Time {
		return c.Frames[0].Pose.Clone()
	}
	if t >= c.Frames[n-1].Time {
		return c.Frames[n-1].Pose.Clone()
	}
	i := 1
	for c.Frames[i].Time < t {
		i++
	}
	a, b := c.Frames[i-1], c.Frames[i]
	alpha := float64(t-a.Time) / float64(b.Time-a.Time)
	return c.interpolate(a.Pose, b.Pose, alpha)
}

func (c *Clip) interpolate(a, b *rig.Pose, alpha float64) *rig.Pose {
	pose := rig.NewPose()
	for _, j := range c.Structure.Joints() {
		ja, ok := a.Joint(j)
		if !ok {
			ja, _ = c.Rest.Joint(j)
		}
		jb, ok := b.Joint(j)
		if !ok {
			jb, _ = c.Rest.Joint(j)
		}
		pos := ja.Position.Lerp(&jb.Position, geom.Element(alpha))
		rot := geom.Slerp(&ja.Rotation, &jb.Rotation, alpha)
		rj := rig.NewRigJoint(pos, rot, &ja.Direction)
		if parent, ok := pose.World(c.Structure.Parent(j)); ok {
			rj.UpdateWorld(parent)
		}
		pose.Set(j, rj)
	}
	return pose
}
