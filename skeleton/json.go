package skeleton

import (
	"encoding/json"
	"time"

	"github.com/binzume/mocapretarget/geom"
)

type jointJSON struct {
	Position    [3]float32     `json:"position"`
	Orientation *[4]float32    `json:"orientation,omitempty"`
	Tracking    *TrackingState `json:"tracking,omitempty"`
}

type snapshotJSON struct {
	Time   float64                `json:"time"`
	Joints map[JointID]*jointJSON `json:"joints"`
}

// MarshalJSON encodes the snapshot with the time in seconds and joints keyed by name.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	v := snapshotJSON{Time: s.time.Seconds(), Joints: map[JointID]*jointJSON{}}
	for _, j := range s.Joints() {
		sample := s.joints[j]
		o := [4]float32{sample.Orientation.X, sample.Orientation.Y, sample.Orientation.Z, sample.Orientation.W}
		tracking := sample.Tracking
		v.Joints[j] = &jointJSON{
			Position:    [3]float32{sample.Position.X, sample.Position.Y, sample.Position.Z},
			Orientation: &o,
			Tracking:    &tracking,
		}
	}
	return json.Marshal(&v)
}

// UnmarshalJSON decodes a snapshot. A missing orientation is the identity and
// a missing tracking state is Tracked.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var v snapshotJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Snapshot{time: time.Duration(v.Time * float64(time.Second))}
	for j, jj := range v.Joints {
		if jj == nil {
			continue
		}
		sample := JointSample{
			Position:    *geom.NewVector3FromArray(jj.Position),
			Orientation: *geom.NewIdentityQuaternion(),
			Tracking:    Tracked,
		}
		if jj.Tracking != nil {
			sample.Tracking = *jj.Tracking
		}
		if jj.Orientation != nil {
			sample.Orientation = *geom.NewQuaternionFromArray(*jj.Orientation)
		}
		s.joints[j] = sample
		s.present[j] = true
	}
	return nil
}
