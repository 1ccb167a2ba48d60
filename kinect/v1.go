package kinect

import (
	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

// SkeletonJointCount is the number of joints of a Kinect v1 skeleton.
const SkeletonJointCount = 20

// NUI_SKELETON_POSITION_INDEX order. The v1 skeleton has no neck, hand tips or thumbs.
var v1Joints = [SkeletonJointCount]skeleton.JointID{
	skeleton.SpineBase,     // HipCenter
	skeleton.SpineMid,      // Spine
	skeleton.SpineShoulder, // ShoulderCenter
	skeleton.Head,
	skeleton.ShoulderLeft,
	skeleton.ElbowLeft,
	skeleton.WristLeft,
	skeleton.HandLeft,
	skeleton.ShoulderRight,
	skeleton.ElbowRight,
	skeleton.WristRight,
	skeleton.HandRight,
	skeleton.HipLeft,
	skeleton.KneeLeft,
	skeleton.AnkleLeft,
	skeleton.FootLeft,
	skeleton.HipRight,
	skeleton.KneeRight,
	skeleton.AnkleRight,
	skeleton.FootRight,
}

// SkeletonData is one Kinect v1 skeleton. Each bone orientation is the
// absolute rotation matrix of the bone ending at the joint, M11 to M44.
type SkeletonData struct {
	TrackingID    uint32                          `json:"trackingId"`
	TrackingState int                             `json:"trackingState"`
	Positions     [SkeletonJointCount]Point       `json:"positions"`
	States        [SkeletonJointCount]int         `json:"states"`
	BoneRotations [SkeletonJointCount][16]float32 `json:"boneRotations"`
}

// V1JointID returns the joint of a NUI_SKELETON_POSITION_INDEX.
func V1JointID(index int) skeleton.JointID {
	if index < 0 || index >= SkeletonJointCount {
		return skeleton.Unspecified
	}
	return v1Joints[index]
}

// FromSkeletonV1 converts a Kinect v1 skeleton. relativeTime is in 100ns ticks.
func FromSkeletonV1(data *SkeletonData, relativeTime int64) (*skeleton.Snapshot, error) {
	// NUI_SKELETON_TRACKED
	if data == nil || data.TrackingState != 2 {
		return nil, ErrNotTracked
	}
	b := skeleton.NewBuilder(TicksToDuration(relativeTime))
	for i, id := range v1Joints {
		tracking, ok := trackingState(data.States[i])
		if !ok {
			continue
		}
		// row-vector matrix; read column-major it is the column-vector form
		m := geom.Matrix4(data.BoneRotations[i])
		q := geom.NewIdentityQuaternion()
		if m.Det() != 0 {
			q = geom.NewQuaternionFromMatrix4(&m)
		}
		b.Set(id, skeleton.JointSample{
			Position:    toRigPosition(data.Positions[i]),
			Orientation: toRigOrientation(q),
			Tracking:    tracking,
		})
	}
	return b.Build(), nil
}

// SkeletonFrame is one NUI_SKELETON_FRAME.
type SkeletonFrame struct {
	RelativeTime int64           `json:"relativeTime"`
	Skeletons    []*SkeletonData `json:"skeletons"`
}

// TrackedSkeleton returns the first fully tracked skeleton of the frame.
func (f *SkeletonFrame) TrackedSkeleton() (*SkeletonData, bool) {
	for _, s := range f.Skeletons {
		if s != nil && s.TrackingState == 2 {
			return s, true
		}
	}
	return nil, false
}

// FromSkeletonFrameV1 converts the first tracked skeleton of the frame.
func FromSkeletonFrameV1(frame *SkeletonFrame) (*skeleton.Snapshot, error) {
	data, ok := frame.TrackedSkeleton()
	if !ok {
		return nil, ErrNotTracked
	}
	return FromSkeletonV1(data, frame.RelativeTime)
}
