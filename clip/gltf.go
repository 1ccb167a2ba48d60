package clip

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/gltfutil"
	"github.com/binzume/mocapretarget/rig"
	"github.com/binzume/mocapretarget/skeleton"
	"github.com/binzume/mocapretarget/vrm"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

type GLTFOptions struct {
	// Humanoid adds a VRM humanoid bone mapping for the joint nodes.
	Humanoid bool
	Author   string
}

func isRestRotations(samples [][4]float32, rest [4]float32) bool {
	for _, q := range samples {
		if q != rest {
			return false
		}
	}
	return true
}

func isRestTranslations(samples [][3]float32, rest [3]float32) bool {
	for _, p := range samples {
		if p != rest {
			return false
		}
	}
	return true
}

func quaternionArray(q *geom.Quaternion) [4]float32 {
	var a [4]float32
	q.ToArray(a[:])
	return a
}

func vectorArray(v *geom.Vector3) [3]float32 {
	var a [3]float32
	v.ToArray(a[:])
	return a
}

// addJointNodes adds one node per rig joint holding the rest transform.
func addJointNodes(doc *gltf.Document, c *Clip) map[skeleton.JointID]int {
	nodes := map[skeleton.JointID]int{}
	for _, j := range c.Structure.Joints() {
		rj, _ := c.Rest.Joint(j)
		nodes[j] = len(doc.Nodes)
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        j.String(),
			Translation: vectorArray(&rj.Position),
			Rotation:    quaternionArray(&rj.Rotation),
		})
		if p := c.Structure.Parent(j); p != skeleton.Unspecified {
			parent := doc.Nodes[nodes[p]]
			parent.Children = append(parent.Children, uint32(nodes[j]))
		} else {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(nodes[j]))
		}
	}
	return nodes
}

func addJointChannels(doc *gltf.Document, a *gltf.Animation, c *Clip, nodes map[skeleton.JointID]int) {
	keys := make([]float32, len(c.Frames))
	for i, f := range c.Frames {
		keys[i] = float32((f.Time - c.Frames[0].Time).Seconds())
	}
	keysAcc := modeler.WriteAccessor(doc, gltf.TargetNone, keys)
	doc.Accessors[keysAcc].Min = []float32{keys[0]}
	doc.Accessors[keysAcc].Max = []float32{keys[len(keys)-1]}

	addSampler := func(n int, output uint32, path gltf.TRSProperty) {
		a.Samplers = append(a.Samplers, &gltf.AnimationSampler{
			Input:         gltf.Index(keysAcc),
			Output:        gltf.Index(output),
			Interpolation: gltf.InterpolationLinear,
		})
		a.Channels = append(a.Channels, &gltf.Channel{
			Sampler: gltf.Index(uint32(len(a.Samplers) - 1)),
			Target: gltf.ChannelTarget{
				Node: gltf.Index(uint32(n)),
				Path: path,
			},
		})
	}

	for _, j := range c.Structure.Joints() {
		rest, _ := c.Rest.Joint(j)
		n := nodes[j]

		var rotations [][4]float32
		var prev *geom.Quaternion
		for _, q := range c.Rotations(j) {
			// Keep neighbouring keys in one hemisphere so linear sampling takes the short way.
			if prev != nil && prev.Dot(q) < 0 {
				q = q.Scale(-1)
			}
			prev = q
			rotations = append(rotations, quaternionArray(q))
		}
		if !isRestRotations(rotations, quaternionArray(&rest.Rotation)) {
			log.Println("Rotation channel:", j)
			addSampler(n, modeler.WriteTangent(doc, rotations), gltf.TRSRotation)
		}

		var translations [][3]float32
		for _, p := range c.Translations(j) {
			translations = append(translations, vectorArray(p))
		}
		if !isRestTranslations(translations, vectorArray(&rest.Position)) {
			log.Println("Translate channel:", j)
			addSampler(n, modeler.WritePosition(doc, translations), gltf.TRSTranslation)
		}
	}
}

// ToGLTF builds a document with one node per rig joint and one animation
// holding the clip.
func ToGLTF(c *Clip, opts *GLTFOptions) (*gltf.Document, error) {
	if opts == nil {
		opts = &GLTFOptions{}
	}
	doc := gltf.NewDocument()
	nodes := addJointNodes(doc, c)

	if len(c.Frames) > 0 {
		a := gltf.Animation{Name: c.Name}
		addJointChannels(doc, &a, c, nodes)
		if len(a.Channels) > 0 {
			doc.Animations = append(doc.Animations, &a)
		}
	}

	if opts.Humanoid {
		vdoc := (*vrm.Document)(doc)
		ext := vdoc.VRM()
		ext.Meta.Title = c.Name
		ext.Meta.Author = opts.Author
		ext.MapJoints(nodes)
		if err := vdoc.ValidateBones(); err != nil {
			log.Println("WARNING:", err)
		}
	}
	return doc, nil
}

// WriteGLB writes the clip as binary glTF.
func WriteGLB(c *Clip, w io.Writer, opts *GLTFOptions) error {
	doc, err := ToGLTF(c, opts)
	if err != nil {
		return err
	}
	e := gltf.NewEncoder(w)
	e.AsBinary = true
	return e.Encode(doc)
}

func SaveGLB(c *Clip, path string, opts *GLTFOptions) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return WriteGLB(c, w, opts)
}

// jointNodes finds the node of every joint by node name, then by the VRM
// humanoid mapping.
func jointNodes(doc *gltf.Document) map[skeleton.JointID]uint32 {
	nodes := map[skeleton.JointID]uint32{}
	for i, n := range doc.Nodes {
		if j, err := skeleton.ParseJointID(n.Name); err == nil {
			nodes[j] = uint32(i)
		}
	}
	if ext, ok := doc.Extensions[vrm.ExtensionName].(*vrm.VRM); ok {
		for _, b := range ext.Humanoid.Bones {
			j, ok := vrm.JointForBone(b.Bone)
			if _, found := nodes[j]; ok && !found && b.Node >= 0 && b.Node < len(doc.Nodes) {
				nodes[j] = uint32(b.Node)
			}
		}
	}
	return nodes
}

// FromGLTF rebuilds a clip from a node animation. Nodes are matched to joints
// by name or VRM humanoid bone. Joints without a channel keep their rest state.
func FromGLTF(doc *gltf.Document, animation int, structure *rig.Structure, rest *rig.Pose) (*Clip, error) {
	anim, err := gltfutil.ReadAnimation(doc, animation)
	if err != nil {
		return nil, err
	}
	keys := anim.Keys()
	if len(keys) == 0 {
		return nil, fmt.Errorf("animation %d has no keys", animation)
	}
	nodes := jointNodes(doc)
	tracks := map[skeleton.JointID]*gltfutil.Track{}
	for _, j := range structure.Joints() {
		if n, ok := nodes[j]; ok && anim.Tracks[n] != nil {
			tracks[j] = anim.Tracks[n]
		}
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("animation %d does not move any joint of %v", animation, structure.Name())
	}

	c := &Clip{Name: anim.Name, Structure: structure, Rest: rest}
	for _, k := range keys {
		pose := rig.NewPose()
		for _, j := range structure.Joints() {
			rj, _ := rest.Joint(j)
			pos, rot := rj.Position, rj.Rotation
			if tr := tracks[j]; tr != nil {
				if r, ok := tr.RotationAt(k); ok {
					rot = *r.Normalize()
				}
				if p, ok := tr.TranslationAt(k); ok {
					pos = *p
				}
			}
			nj := rig.NewRigJoint(&pos, &rot, &rj.Direction)
			if parent, ok := pose.World(structure.Parent(j)); ok {
				nj.UpdateWorld(parent)
			}
			pose.Set(j, nj)
		}
		c.Frames = append(c.Frames, &Frame{Time: time.Duration(float64(k) * float64(time.Second)), Pose: pose})
	}
	return c, nil
}

// LoadGLTF reads the first animation of a glTF or VRM file.
func LoadGLTF(path string, structure *rig.Structure, rest *rig.Pose) (*Clip, error) {
	doc, err := gltfutil.Load(path)
	if err != nil {
		return nil, err
	}
	return FromGLTF(doc, 0, structure, rest)
}
