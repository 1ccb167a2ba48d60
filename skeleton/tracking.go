package skeleton

import (
	"fmt"
	"strings"
)

// TrackingState is the confidence a sensor reports for a joint.
type TrackingState int

const (
	NotTracked TrackingState = iota
	Inferred
	Tracked
)

var trackingNames = []string{"NotTracked", "Inferred", "Tracked"}

func (s TrackingState) String() string {
	if s < 0 || int(s) >= len(trackingNames) {
		return fmt.Sprintf("TrackingState(%d)", int(s))
	}
	return trackingNames[s]
}

func (s TrackingState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TrackingState) UnmarshalText(b []byte) error {
	for i, n := range trackingNames {
		if strings.EqualFold(n, string(b)) {
			*s = TrackingState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tracking state: %q", string(b))
}
