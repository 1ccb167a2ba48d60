// Package mmd reads and writes MikuMikuDance motion data (.vmd).
package mmd

import (
	"math"
	"sort"
	"time"

	"github.com/binzume/mocapretarget/geom"
)

const (
	FormatName = "Vocaloid Motion Data 0002"
	// FrameRate is the fixed frame rate of vmd key frames.
	FrameRate = 30
	// Scale is the length of one MMD unit in meters.
	Scale = 80 * 0.001
)

// Motion is the content of a .vmd file. Camera, light and shadow sections are
// written empty and skipped when parsing.
type Motion struct {
	ModelName string
	Bones     []*BoneFrame
	Morphs    []*MorphFrame
}

type BoneFrame struct {
	Bone     string
	Frame    uint32
	Position geom.Vector3
	Rotation geom.Quaternion
	// Interpolation holds the bezier control points of the segment that ends at this frame.
	Interpolation [64]byte
}

type MorphFrame struct {
	Morph  string
	Frame  uint32
	Weight float32
}

// LinearInterpolation is the interpolation block of a straight segment.
var LinearInterpolation = linearInterpolation()

func linearInterpolation() [64]byte {
	var row [16]byte
	for i := 0; i < 8; i++ {
		row[i] = 20
		row[i+8] = 107
	}
	var b [64]byte
	for r := 0; r < 4; r++ {
		for i := 0; i+r < 16; i++ {
			b[r*16+i] = row[i+r]
		}
	}
	return b
}

// FrameNumber returns the key frame nearest to t.
func FrameNumber(t time.Duration) uint32 {
	if t <= 0 {
		return 0
	}
	return uint32(math.Round(t.Seconds() * FrameRate))
}

// BoneChannel holds the key frames of one bone sorted by frame.
type BoneChannel struct {
	Bone   string
	Frames []*BoneFrame
}

// BoneChannels groups bone key frames by bone.
func (m *Motion) BoneChannels() map[string]*BoneChannel {
	sort.SliceStable(m.Bones, func(i, j int) bool { return m.Bones[i].Frame < m.Bones[j].Frame })

	r := map[string]*BoneChannel{}
	for _, f := range m.Bones {
		ch, ok := r[f.Bone]
		if !ok {
			ch = &BoneChannel{Bone: f.Bone}
			r[f.Bone] = ch
		}
		ch.Frames = append(ch.Frames, f)
	}
	return r
}

// ToMMDPosition converts a rig space position in meters to MMD units.
func ToMMDPosition(v *geom.Vector3) geom.Vector3 {
	return geom.Vector3{X: v.X / Scale, Y: v.Y / Scale, Z: -v.Z / Scale}
}

// ToMMDRotation mirrors a rig space rotation along Z.
func ToMMDRotation(q *geom.Quaternion) geom.Quaternion {
	return geom.Quaternion{X: -q.X, Y: -q.Y, Z: q.Z, W: q.W}
}
