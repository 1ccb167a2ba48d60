package kinect

import (
	"log"
	"strings"
	"time"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

// NUIJoint is a joint reported by a generic NUI device. Positions are in
// meters in the rig frame. Rotation is a right-handed heading, attitude and
// bank in degrees.
type NUIJoint struct {
	Name       string     `json:"name"`
	Position   [3]float32 `json:"position"`
	Rotation   [3]float64 `json:"rotation"`
	Confidence float32    `json:"confidence"`
}

type NUISkeleton struct {
	Time   float64     `json:"time"`
	Joints []*NUIJoint `json:"joints"`
}

var nuiJointNames = map[string]skeleton.JointID{
	"head":            skeleton.Head,
	"neck":            skeleton.Neck,
	"torso":           skeleton.SpineMid,
	"waist":           skeleton.SpineBase,
	"left_shoulder":   skeleton.ShoulderLeft,
	"left_elbow":      skeleton.ElbowLeft,
	"left_wrist":      skeleton.WristLeft,
	"left_hand":       skeleton.HandLeft,
	"left_fingertip":  skeleton.HandTipLeft,
	"right_shoulder":  skeleton.ShoulderRight,
	"right_elbow":     skeleton.ElbowRight,
	"right_wrist":     skeleton.WristRight,
	"right_hand":      skeleton.HandRight,
	"right_fingertip": skeleton.HandTipRight,
	"left_hip":        skeleton.HipLeft,
	"left_knee":       skeleton.KneeLeft,
	"left_ankle":      skeleton.AnkleLeft,
	"left_foot":       skeleton.FootLeft,
	"right_hip":       skeleton.HipRight,
	"right_knee":      skeleton.KneeRight,
	"right_ankle":     skeleton.AnkleRight,
	"right_foot":      skeleton.FootRight,
}

// NUIJointID resolves a NUI joint name. Canonical joint names are accepted too.
func NUIJointID(name string) skeleton.JointID {
	if j, ok := nuiJointNames[strings.ToLower(name)]; ok {
		return j
	}
	if j, err := skeleton.ParseJointID(name); err == nil {
		return j
	}
	return skeleton.Unspecified
}

func confidenceToTracking(c float32) (skeleton.TrackingState, bool) {
	switch {
	case c >= 0.5:
		return skeleton.Tracked, true
	case c > 0:
		return skeleton.Inferred, true
	}
	return skeleton.NotTracked, false
}

// FromNUI converts a generic NUI skeleton. Joints with zero confidence and
// unknown names are left out. The NUI joint set has no spine shoulder; it is
// inferred as the midpoint of the shoulders.
func FromNUI(s *NUISkeleton) *skeleton.Snapshot {
	b := skeleton.NewBuilder(time.Duration(s.Time * float64(time.Second)))
	var positions [skeleton.JointCount]*geom.Vector3
	for _, j := range s.Joints {
		if j == nil {
			continue
		}
		id := NUIJointID(j.Name)
		if id == skeleton.Unspecified {
			log.Println("Unknown joint:", j.Name)
			continue
		}
		tracking, ok := confidenceToTracking(j.Confidence)
		if !ok {
			continue
		}
		rot := geom.HeadingAttitudeBank{
			Heading:  geom.DegToRad(j.Rotation[0]),
			Attitude: geom.DegToRad(j.Rotation[1]),
			Bank:     geom.DegToRad(j.Rotation[2]),
		}
		b.Set(id, skeleton.JointSample{
			Position:    *geom.NewVector3FromArray(j.Position),
			Orientation: *rot.ToQuaternion(),
			Tracking:    tracking,
		})
		positions[id] = geom.NewVector3FromArray(j.Position)
	}

	l, r := positions[skeleton.ShoulderLeft], positions[skeleton.ShoulderRight]
	if positions[skeleton.SpineShoulder] == nil && l != nil && r != nil {
		b.Set(skeleton.SpineShoulder, skeleton.JointSample{
			Position:    *geom.Midpoint(l, r),
			Orientation: *geom.NewIdentityQuaternion(),
			Tracking:    skeleton.Inferred,
		})
	}
	return b.Build()
}

// NUIRotation returns the joint orientation of a snapshot as heading, attitude
// and bank in degrees.
func NUIRotation(snap *skeleton.Snapshot, j skeleton.JointID) ([3]float64, bool) {
	sample, ok := snap.Joint(j)
	if !ok {
		return [3]float64{}, false
	}
	e := geom.NewHeadingAttitudeBank(&sample.Orientation)
	return [3]float64{geom.RadToDeg(e.Heading), geom.RadToDeg(e.Attitude), geom.RadToDeg(e.Bank)}, true
}
