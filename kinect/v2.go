package kinect

import (
	"errors"
	"fmt"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

// BodyJointCount is the number of joints of a Kinect v2 body.
const BodyJointCount = 25

// Kinect v2 JointType order.
var v2Joints = [BodyJointCount]skeleton.JointID{
	skeleton.SpineBase,
	skeleton.SpineMid,
	skeleton.Neck,
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
	skeleton.SpineShoulder,
	skeleton.HandTipLeft,
	skeleton.ThumbLeft,
	skeleton.HandTipRight,
	skeleton.ThumbRight,
}

// ErrNotTracked is returned for bodies the sensor does not track.
var ErrNotTracked = errors.New("body is not tracked")

type BodyJoint struct {
	JointType     int         `json:"jointType"`
	Position      Point       `json:"position"`
	Orientation   Orientation `json:"orientation"`
	TrackingState int         `json:"trackingState"`
}

// Body is one Kinect v2 body.
type Body struct {
	TrackingID uint64       `json:"trackingId"`
	IsTracked  bool         `json:"isTracked"`
	Joints     []*BodyJoint `json:"joints"`
}

// BodyFrame is the set of bodies captured at one instant.
type BodyFrame struct {
	RelativeTime int64   `json:"relativeTime"`
	Bodies       []*Body `json:"bodies"`
}

// TrackedBody returns the first tracked body of the frame.
func (f *BodyFrame) TrackedBody() (*Body, bool) {
	for _, b := range f.Bodies {
		if b != nil && b.IsTracked {
			return b, true
		}
	}
	return nil, false
}

// V2JointID returns the joint of a Kinect v2 JointType.
func V2JointID(jointType int) skeleton.JointID {
	if jointType < 0 || jointType >= BodyJointCount {
		return skeleton.Unspecified
	}
	return v2Joints[jointType]
}

// FromBodyV2 converts a Kinect v2 body. Joints reported as NotTracked are left out.
func FromBodyV2(body *Body, relativeTime int64) (*skeleton.Snapshot, error) {
	if body == nil || !body.IsTracked {
		return nil, ErrNotTracked
	}
	b := skeleton.NewBuilder(TicksToDuration(relativeTime))
	for _, j := range body.Joints {
		if j == nil {
			continue
		}
		id := V2JointID(j.JointType)
		if id == skeleton.Unspecified {
			return nil, fmt.Errorf("invalid joint type: %d", j.JointType)
		}
		tracking, ok := trackingState(j.TrackingState)
		if !ok {
			continue
		}
		o := j.Orientation
		b.Set(id, skeleton.JointSample{
			Position:    toRigPosition(j.Position),
			Orientation: toRigOrientation(geom.NewQuaternion(o.X, o.Y, o.Z, o.W)),
			Tracking:    tracking,
		})
	}
	return b.Build(), nil
}

// FromBodyFrameV2 converts the first tracked body of the frame.
func FromBodyFrameV2(frame *BodyFrame) (*skeleton.Snapshot, error) {
	body, ok := frame.TrackedBody()
	if !ok {
		return nil, ErrNotTracked
	}
	return FromBodyV2(body, frame.RelativeTime)
}
