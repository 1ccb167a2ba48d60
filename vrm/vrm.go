// Package vrm reads and writes the humanoid part of the VRM 0.x glTF extension.
package vrm

// https://vrm.dev/
// https://github.com/vrm-c/vrm-specification/blob/master/specification/0.0/README.ja.md

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qmuntal/gltf"
)

const (
	ExtensionName   = "VRM"
	ExporterVersion = "mocapretarget-0.1"
	SpecVersion     = "0.0"
)

func init() {
	gltf.RegisterExtension(ExtensionName, Unmarshal)
}

type Metadata struct {
	Title   string `json:"title"`
	Version string `json:"version"`
	Author  string `json:"author"`

	LicenseName     string `json:"licenseName"`
	OtherLicenseUrl string `json:"otherLicenseUrl"`
}

type Bone struct {
	Bone             string  `json:"bone"`
	Node             int     `json:"node"`
	UseDefaultValues bool    `json:"useDefaultValues"`
	AxisLength       float32 `json:"axisLength,omitempty"`
}

type Humanoid struct {
	Bones []*Bone `json:"humanBones"`
}

type VRM struct {
	Meta     Metadata `json:"meta"`
	Humanoid Humanoid `json:"humanoid"`

	ExporterVersion string `json:"exporterVersion"`
	SpecVersion     string `json:"specVersion"`
}

func NewVRM() *VRM {
	return &VRM{ExporterVersion: ExporterVersion, SpecVersion: SpecVersion}
}

func Unmarshal(data []byte) (interface{}, error) {
	var vrmext VRM
	if err := json.Unmarshal([]byte(data), &vrmext); err != nil {
		return nil, err
	}
	return &vrmext, nil
}

// Bone returns the node of a humanoid bone.
func (v *VRM) Bone(name string) (int, bool) {
	for _, b := range v.Humanoid.Bones {
		if b.Bone == name {
			return b.Node, true
		}
	}
	return 0, false
}

// SetBone maps a humanoid bone to a node, replacing an existing mapping.
func (v *VRM) SetBone(name string, node int) {
	for _, b := range v.Humanoid.Bones {
		if b.Bone == name {
			b.Node = node
			return
		}
	}
	v.Humanoid.Bones = append(v.Humanoid.Bones, &Bone{Bone: name, Node: node, UseDefaultValues: true})
}

// CheckRequiredBones returns the required bones that have no node.
func (v *VRM) CheckRequiredBones() []string {
	var missing []string
	for _, name := range RequiredBones {
		if _, ok := v.Bone(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

type Document gltf.Document

func (doc *Document) VRM() *VRM {
	if ext, ok := doc.Extensions[ExtensionName].(*VRM); ok {
		return ext
	}
	ext := NewVRM()
	if doc.Extensions == nil {
		doc.Extensions = gltf.Extensions{}
	}
	doc.Extensions[ExtensionName] = ext
	if !doc.IsExtentionUsed(ExtensionName) {
		doc.ExtensionsUsed = append(doc.ExtensionsUsed, ExtensionName)
	}
	return ext
}

func (doc *Document) IsExtentionUsed(extname string) bool {
	for _, ex := range doc.ExtensionsUsed {
		if ex == extname {
			return true
		}
	}
	return false
}

func (doc *Document) ValidateBones() error {
	errorBones := doc.VRM().CheckRequiredBones()
	if len(errorBones) > 0 {
		return fmt.Errorf("Bone error. Missing bones: %v", strings.Join(errorBones, ","))
	}
	return nil
}
