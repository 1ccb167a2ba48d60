package rig

import (
	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

// Empirical pitch offsets, in degrees, compensating the bias of
// direction-only solving on legs.
const (
	DefaultHipPitch   = -5.0
	DefaultKneePitch  = -5.0
	DefaultAnklePitch = -30.0
)

// DefaultCorrections returns the corrective offsets used when a profile does not set any.
func DefaultCorrections() map[skeleton.JointID]Correction {
	return map[skeleton.JointID]Correction{
		skeleton.HipLeft:    {Pitch: DefaultHipPitch},
		skeleton.HipRight:   {Pitch: DefaultHipPitch},
		skeleton.KneeLeft:   {Pitch: DefaultKneePitch},
		skeleton.KneeRight:  {Pitch: DefaultKneePitch},
		skeleton.AnkleLeft:  {Pitch: DefaultAnklePitch},
		skeleton.AnkleRight: {Pitch: DefaultAnklePitch},
	}
}

// Quaternion returns the correction as a rotation: pitch about X, yaw about Y, roll about Z.
func (c Correction) Quaternion() *geom.Quaternion {
	return geom.NewEuler(
		float32(geom.DegToRad(c.Pitch)),
		float32(geom.DegToRad(c.Yaw)),
		float32(geom.DegToRad(c.Roll)),
		geom.RotationOrderXYZ).ToQuaternion()
}

func (c Correction) IsZero() bool {
	return c.Pitch == 0 && c.Yaw == 0 && c.Roll == 0
}
