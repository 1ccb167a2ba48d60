package rig

import (
	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

// RigJoint is the state of one joint of a posed rig.
type RigJoint struct {
	// Position and Rotation are relative to the parent joint.
	Position geom.Vector3
	Rotation geom.Quaternion
	// Direction is the unit rest direction to the child in the joint's own frame.
	Direction geom.Vector3

	Local geom.Matrix4
	World geom.Matrix4
}

// NewRigJoint returns a joint with its local matrix composed from pos and rot.
// World is the local matrix until UpdateWorld is called.
func NewRigJoint(pos *geom.Vector3, rot *geom.Quaternion, dir *geom.Vector3) RigJoint {
	j := RigJoint{Position: *pos, Rotation: *rot, Direction: *dir}
	j.Local = *geom.NewTRSMatrix4(pos, rot, nil)
	j.World = j.Local
	return j
}

// UpdateWorld sets World to parentWorld × Local. A nil parent means the joint is a root.
func (j *RigJoint) UpdateWorld(parentWorld *geom.Matrix4) {
	if parentWorld == nil {
		j.World = j.Local
		return
	}
	j.World = *parentWorld.Mul(&j.Local)
}

// WorldPosition returns the joint origin in rig space.
func (j *RigJoint) WorldPosition() *geom.Vector3 {
	return j.World.Translation()
}

// Pose maps joints to their state. Absent joints are not part of the pose.
type Pose struct {
	joints  [skeleton.JointCount]RigJoint
	present [skeleton.JointCount]bool
}

func NewPose() *Pose {
	return &Pose{}
}

// Joint returns a copy of the joint state.
func (p *Pose) Joint(j skeleton.JointID) (RigJoint, bool) {
	if !p.Has(j) {
		return RigJoint{}, false
	}
	return p.joints[j], true
}

func (p *Pose) Has(j skeleton.JointID) bool {
	return j.Valid() && p.present[j]
}

func (p *Pose) Set(j skeleton.JointID, rj RigJoint) {
	if j.Valid() {
		p.joints[j] = rj
		p.present[j] = true
	}
}

// World returns the world matrix of j.
func (p *Pose) World(j skeleton.JointID) (*geom.Matrix4, bool) {
	if !p.Has(j) {
		return nil, false
	}
	m := p.joints[j].World
	return &m, true
}

// Joints returns the present joints in topological order.
func (p *Pose) Joints() []skeleton.JointID {
	var joints []skeleton.JointID
	for i, ok := range p.present {
		if ok {
			joints = append(joints, skeleton.JointID(i))
		}
	}
	return joints
}

func (p *Pose) Clone() *Pose {
	c := *p
	return &c
}

// BuildRestPose returns the rest pose described by the structure.
func BuildRestPose(s *Structure) *Pose {
	pose := NewPose()
	for _, j := range s.Joints() {
		info := &s.joints[j]
		rj := NewRigJoint(&info.position, &info.rotation, &info.direction)
		if info.parent != skeleton.Unspecified {
			parent := pose.joints[info.parent].World
			rj.UpdateWorld(&parent)
		}
		pose.Set(j, rj)
	}
	return pose
}

// Build validates cfg and returns its structure and rest pose.
func Build(cfg *Config) (*Structure, *Pose, error) {
	s, err := BuildStructure(cfg)
	if err != nil {
		return nil, nil, err
	}
	return s, BuildRestPose(s), nil
}

// Snapshot returns a capture whose joint positions are the world positions of
// the pose. Used to check that solving a rig against its own rest pose is a no-op.
func (p *Pose) Snapshot() *skeleton.Snapshot {
	b := skeleton.NewBuilder(0)
	for _, j := range p.Joints() {
		rj := p.joints[j]
		_, rot, _ := rj.World.Decompose()
		b.Set(j, skeleton.JointSample{Position: *rj.WorldPosition(), Orientation: *rot, Tracking: skeleton.Tracked})
	}
	return b.Build()
}
