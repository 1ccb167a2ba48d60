// Package gltfutil reads node animation back from glTF documents.
package gltfutil

import (
	"fmt"
	"sort"

	"github.com/binzume/mocapretarget/geom"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/binary"
)

func Load(path string) (*gltf.Document, error) {
	return gltf.Open(path)
}

// readAccessor decodes a float accessor into data, which must be a slice of
// Count elements of the accessor type.
func readAccessor(doc *gltf.Document, index uint32, data interface{}) error {
	if int(index) >= len(doc.Accessors) {
		return fmt.Errorf("accessor %d not found", index)
	}
	acr := doc.Accessors[index]
	if acr.BufferView == nil {
		return fmt.Errorf("accessor %d has no buffer view", index)
	}
	if acr.Sparse != nil {
		return fmt.Errorf("accessor %d: sparse accessors are not supported", index)
	}
	if acr.ComponentType != gltf.ComponentFloat {
		return fmt.Errorf("accessor %d: not a float accessor", index)
	}
	bufferView := doc.BufferViews[*acr.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	start := bufferView.ByteOffset + acr.ByteOffset
	if int(start) > len(buffer.Data) {
		return fmt.Errorf("accessor %d: buffer data not loaded", index)
	}
	return binary.Read(buffer.Data[start:], bufferView.ByteStride, data)
}

// Track is the sampled rotation and translation of one node.
type Track struct {
	Node uint32

	RotationKeys []float32
	Rotations    []*geom.Quaternion

	TranslationKeys []float32
	Translations    []*geom.Vector3
}

// NodeAnimation holds the tracks of one animation by node.
type NodeAnimation struct {
	Name   string
	Tracks map[uint32]*Track
}

// Keys returns the sorted union of all key times.
func (a *NodeAnimation) Keys() []float32 {
	set := map[float32]bool{}
	for _, t := range a.Tracks {
		for _, k := range t.RotationKeys {
			set[k] = true
		}
		for _, k := range t.TranslationKeys {
			set[k] = true
		}
	}
	keys := make([]float32, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ReadAnimation reads the rotation and translation channels of an animation.
// Weight channels are ignored.
func ReadAnimation(doc *gltf.Document, index int) (*NodeAnimation, error) {
	if index < 0 || index >= len(doc.Animations) {
		return nil, fmt.Errorf("animation %d not found", index)
	}
	a := doc.Animations[index]
	anim := &NodeAnimation{Name: a.Name, Tracks: map[uint32]*Track{}}
	for _, ch := range a.Channels {
		if ch.Sampler == nil || ch.Target.Node == nil || int(*ch.Sampler) >= len(a.Samplers) {
			continue
		}
		if ch.Target.Path != gltf.TRSRotation && ch.Target.Path != gltf.TRSTranslation {
			continue
		}
		sampler := a.Samplers[*ch.Sampler]
		if sampler.Input == nil || sampler.Output == nil {
			return nil, fmt.Errorf("channel of node %d has no sampler data", *ch.Target.Node)
		}
		if sampler.Interpolation == gltf.InterpolationCubicSpline {
			return nil, fmt.Errorf("channel of node %d: cubic spline is not supported", *ch.Target.Node)
		}
		count := doc.Accessors[*sampler.Input].Count
		keys := make([]float32, count)
		if err := readAccessor(doc, *sampler.Input, keys); err != nil {
			return nil, err
		}

		track, ok := anim.Tracks[*ch.Target.Node]
		if !ok {
			track = &Track{Node: *ch.Target.Node}
			anim.Tracks[track.Node] = track
		}
		if ch.Target.Path == gltf.TRSRotation {
			values := make([][4]float32, count)
			if err := readAccessor(doc, *sampler.Output, values); err != nil {
				return nil, err
			}
			track.RotationKeys = keys
			for _, v := range values {
				track.Rotations = append(track.Rotations, geom.NewQuaternionFromArray(v))
			}
		} else {
			values := make([][3]float32, count)
			if err := readAccessor(doc, *sampler.Output, values); err != nil {
				return nil, err
			}
			track.TranslationKeys = keys
			for _, v := range values {
				track.Translations = append(track.Translations, geom.NewVector3FromArray(v))
			}
		}
	}
	return anim, nil
}

// segment returns i and alpha so that t lies between keys[i] and keys[i+1].
func segment(keys []float32, t float32) (int, float64) {
	if t <= keys[0] {
		return 0, 0
	}
	n := len(keys)
	if t >= keys[n-1] {
		return n - 1, 0
	}
	i := sort.Search(n, func(i int) bool { return keys[i] > t }) - 1
	return i, float64(t-keys[i]) / float64(keys[i+1]-keys[i])
}

// RotationAt samples the rotation track at t. ok is false when the node has
// no rotation channel.
func (t *Track) RotationAt(time float32) (*geom.Quaternion, bool) {
	if len(t.Rotations) == 0 {
		return nil, false
	}
	i, alpha := segment(t.RotationKeys, time)
	if alpha == 0 {
		r := *t.Rotations[i]
		return &r, true
	}
	return geom.Slerp(t.Rotations[i], t.Rotations[i+1], alpha), true
}

// TranslationAt samples the translation track at t.
func (t *Track) TranslationAt(time float32) (*geom.Vector3, bool) {
	if len(t.Translations) == 0 {
		return nil, false
	}
	i, alpha := segment(t.TranslationKeys, time)
	if alpha == 0 {
		v := *t.Translations[i]
		return &v, true
	}
	return t.Translations[i].Lerp(t.Translations[i+1], geom.Element(alpha)), true
}
