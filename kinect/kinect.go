// Package kinect converts sensor skeletons into snapshots.
//
// Kinect camera space is right-handed with Y up and Z pointing from the
// sensor towards the performer. Snapshots use the rig convention where the
// character faces +Z, so positions and orientations are turned 180 degrees
// around Y.
package kinect

import (
	"time"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

// TicksPerSecond is the resolution of sensor timestamps (100ns units).
const TicksPerSecond = 10000000

// Point is a position in camera space, in meters.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Orientation is a quaternion in camera space.
type Orientation struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

var turnY = geom.NewQuaternion(0, 1, 0, 0)

func toRigPosition(p Point) geom.Vector3 {
	return geom.Vector3{X: -p.X, Y: p.Y, Z: -p.Z}
}

func toRigOrientation(q *geom.Quaternion) geom.Quaternion {
	if q.LenSqr() == 0 {
		return *geom.NewIdentityQuaternion()
	}
	return *turnY.Mul(q).Normalize()
}

// TicksToDuration converts a sensor timestamp.
func TicksToDuration(ticks int64) time.Duration {
	return time.Duration(ticks) * (time.Second / TicksPerSecond)
}

func trackingState(s int) (skeleton.TrackingState, bool) {
	switch s {
	case 1:
		return skeleton.Inferred, true
	case 2:
		return skeleton.Tracked, true
	}
	return skeleton.NotTracked, false
}
