package clip

import (
	"fmt"
	"math"
	"time"
)

// Resample returns a copy of c sampled fps times per second from the first to
// the last frame. The last frame is always included.
func Resample(c *Clip, fps float64) (*Clip, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate: %v", fps)
	}
	out := &Clip{Name: c.Name, Structure: c.Structure, Rest: c.Rest}
	if len(c.Frames) == 0 {
		return out, nil
	}
	start := c.Frames[0].Time
	end := c.Frames[len(c.Frames)-1].Time
	step := float64(time.Second) / fps
	if step < 1 {
		return nil, fmt.Errorf("frame rate too high: %v", fps)
	}
	for i := 0; ; i++ {
		t := start + time.Duration(math.Round(float64(i)*step))
		// a sample closer than half a step to the end is replaced by the end frame
		if float64(end-t) < step/2 {
			break
		}
		out.Frames = append(out.Frames, &Frame{Time: t, Pose: c.PoseAt(t)})
	}
	out.Frames = append(out.Frames, &Frame{Time: end, Pose: c.PoseAt(end)})
	return out, nil
}
