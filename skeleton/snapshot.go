package skeleton

import (
	"time"

	"github.com/binzume/mocapretarget/geom"
)

// JointSample is one observed joint.
type JointSample struct {
	Position    geom.Vector3
	Orientation geom.Quaternion
	Tracking    TrackingState
}

// Snapshot is the skeleton observed at one capture instant.
// Joints the sensor did not observe are absent, which is distinct from a
// joint present at the origin. A Snapshot is not modified after construction.
type Snapshot struct {
	time    time.Duration
	joints  [JointCount]JointSample
	present [JointCount]bool
}

// NewSnapshot builds a snapshot from observed joints. Invalid joint ids are ignored.
func NewSnapshot(t time.Duration, joints map[JointID]JointSample) *Snapshot {
	s := &Snapshot{time: t}
	for j, sample := range joints {
		if !j.Valid() {
			continue
		}
		s.joints[j] = sample
		s.present[j] = true
	}
	return s
}

// Time returns the capture time relative to the start of the session.
func (s *Snapshot) Time() time.Duration {
	return s.time
}

func (s *Snapshot) Joint(j JointID) (JointSample, bool) {
	if !s.Has(j) {
		return JointSample{}, false
	}
	return s.joints[j], true
}

func (s *Snapshot) Has(j JointID) bool {
	return j.Valid() && s.present[j]
}

// Position returns a copy of the joint position.
func (s *Snapshot) Position(j JointID) (*geom.Vector3, bool) {
	if !s.Has(j) {
		return nil, false
	}
	p := s.joints[j].Position
	return &p, true
}

// Joints returns the present joints in topological order.
func (s *Snapshot) Joints() []JointID {
	var joints []JointID
	for i, ok := range s.present {
		if ok {
			joints = append(joints, JointID(i))
		}
	}
	return joints
}

func (s *Snapshot) Len() int {
	n := 0
	for _, ok := range s.present {
		if ok {
			n++
		}
	}
	return n
}

// Without returns a copy of s lacking the given joints.
func (s *Snapshot) Without(joints ...JointID) *Snapshot {
	c := *s
	for _, j := range joints {
		if j.Valid() {
			c.joints[j] = JointSample{}
			c.present[j] = false
		}
	}
	return &c
}

// WithTime returns a copy of s stamped with t.
func (s *Snapshot) WithTime(t time.Duration) *Snapshot {
	c := *s
	c.time = t
	return &c
}

// Builder accumulates joints for a Snapshot.
type Builder struct {
	s Snapshot
}

func NewBuilder(t time.Duration) *Builder {
	return &Builder{s: Snapshot{time: t}}
}

func (b *Builder) Set(j JointID, sample JointSample) *Builder {
	if j.Valid() {
		b.s.joints[j] = sample
		b.s.present[j] = true
	}
	return b
}

// SetPosition adds a tracked joint with identity orientation.
func (b *Builder) SetPosition(j JointID, pos *geom.Vector3) *Builder {
	return b.Set(j, JointSample{Position: *pos, Orientation: *geom.NewIdentityQuaternion(), Tracking: Tracked})
}

// Build returns the snapshot. The builder can be reused; later changes do not
// affect snapshots already built.
func (b *Builder) Build() *Snapshot {
	s := b.s
	return &s
}
