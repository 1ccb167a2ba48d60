package rig

import (
	"fmt"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

type jointInfo struct {
	parent    skeleton.JointID
	children  []skeleton.JointID
	child     skeleton.JointID
	averageOf []skeleton.JointID
	lateral   [2]skeleton.JointID

	extremity        bool
	passthrough      bool
	correctInversion bool
	correction       *geom.Quaternion

	position  geom.Vector3
	rotation  geom.Quaternion
	direction geom.Vector3
}

// Structure is the kinematic hierarchy of a target rig. It is read-only once built.
type Structure struct {
	name      string
	root      skeleton.JointID
	solveRoot bool
	up        geom.Vector3
	joints    [skeleton.JointCount]jointInfo
	present   [skeleton.JointCount]bool
}

func (s *Structure) Name() string {
	return s.name
}

func (s *Structure) Root() skeleton.JointID {
	return s.root
}

// SolveRoot reports whether the root rotation is solved from capture rather than kept at rest.
func (s *Structure) SolveRoot() bool {
	return s.solveRoot
}

// Up returns the unit up axis of the capture space.
func (s *Structure) Up() *geom.Vector3 {
	up := s.up
	return &up
}

func (s *Structure) IsInStructure(j skeleton.JointID) bool {
	return j.Valid() && s.present[j]
}

// Parent returns the parent joint, or Unspecified for the root and joints outside the structure.
func (s *Structure) Parent(j skeleton.JointID) skeleton.JointID {
	if !s.IsInStructure(j) {
		return skeleton.Unspecified
	}
	return s.joints[j].parent
}

// Child returns the child the joint is aimed at. Joints aimed at the
// midpoint of several children and leaves return Unspecified.
func (s *Structure) Child(j skeleton.JointID) skeleton.JointID {
	if !s.IsInStructure(j) {
		return skeleton.Unspecified
	}
	return s.joints[j].child
}

// Children returns the direct children in topological order.
func (s *Structure) Children(j skeleton.JointID) []skeleton.JointID {
	if !s.IsInStructure(j) {
		return nil
	}
	return append([]skeleton.JointID(nil), s.joints[j].children...)
}

// AverageOf returns the children whose midpoint the joint is aimed at.
func (s *Structure) AverageOf(j skeleton.JointID) []skeleton.JointID {
	if !s.IsInStructure(j) {
		return nil
	}
	return append([]skeleton.JointID(nil), s.joints[j].averageOf...)
}

// Lateral returns the (left, right) children used to solve the twist of the joint.
func (s *Structure) Lateral(j skeleton.JointID) (skeleton.JointID, skeleton.JointID, bool) {
	if !s.IsInStructure(j) || s.joints[j].lateral[0] == skeleton.Unspecified {
		return skeleton.Unspecified, skeleton.Unspecified, false
	}
	return s.joints[j].lateral[0], s.joints[j].lateral[1], true
}

func (s *Structure) IsExtremity(j skeleton.JointID) bool {
	return s.IsInStructure(j) && s.joints[j].extremity
}

func (s *Structure) IsPassthrough(j skeleton.JointID) bool {
	return s.IsInStructure(j) && s.joints[j].passthrough
}

func (s *Structure) IsParentToMany(j skeleton.JointID) bool {
	return s.IsInStructure(j) && len(s.joints[j].children) > 1
}

func (s *Structure) CorrectInversion(j skeleton.JointID) bool {
	return s.IsInStructure(j) && s.joints[j].correctInversion
}

// Correction returns the corrective rotation applied after solving j.
func (s *Structure) Correction(j skeleton.JointID) (*geom.Quaternion, bool) {
	if !s.IsInStructure(j) || s.joints[j].correction == nil {
		return nil, false
	}
	q := *s.joints[j].correction
	return &q, true
}

// IsSolvable reports whether the rotation of j is computed from capture.
func (s *Structure) IsSolvable(j skeleton.JointID) bool {
	if !s.IsInStructure(j) || s.joints[j].extremity || s.joints[j].passthrough {
		return false
	}
	return j != s.root || s.solveRoot
}

// Joints returns the joints of the structure in topological order.
func (s *Structure) Joints() []skeleton.JointID {
	var joints []skeleton.JointID
	for i, ok := range s.present {
		if ok {
			joints = append(joints, skeleton.JointID(i))
		}
	}
	return joints
}

func parseJoint(name string) (skeleton.JointID, error) {
	j, err := skeleton.ParseJointID(name)
	if err != nil {
		return skeleton.Unspecified, configError(skeleton.Unspecified, "%v", err)
	}
	return j, nil
}

func parseVector(j skeleton.JointID, field string, v []float32) (*geom.Vector3, error) {
	if len(v) != 3 {
		return nil, configError(j, "%s must have 3 elements: %v", field, v)
	}
	return geom.NewVector3(v[0], v[1], v[2]), nil
}

func parseRotation(j skeleton.JointID, v []float32) (*geom.Quaternion, error) {
	switch len(v) {
	case 0:
		return geom.NewIdentityQuaternion(), nil
	case 3:
		return Correction{Pitch: float64(v[0]), Yaw: float64(v[1]), Roll: float64(v[2])}.Quaternion(), nil
	case 4:
		q := geom.NewQuaternion(v[0], v[1], v[2], v[3])
		if q.Len() < geom.Epsilon {
			return nil, configError(j, "zero rotation")
		}
		return q.Normalize(), nil
	}
	return nil, configError(j, "rotation must have 3 or 4 elements: %v", v)
}

func (s *Structure) isChild(parent, j skeleton.JointID) bool {
	return s.IsInStructure(j) && s.joints[j].parent == parent
}

// BuildStructure validates cfg and returns its hierarchy. The hierarchy must be
// a tree rooted at cfg.Root in which every parent precedes its children in
// joint order.
func BuildStructure(cfg *Config) (*Structure, error) {
	s := &Structure{name: cfg.Name, root: skeleton.Unspecified, up: *geom.NewVector3(0, 1, 0), solveRoot: cfg.SolveRoot}
	for i := range s.joints {
		s.joints[i].parent = skeleton.Unspecified
		s.joints[i].child = skeleton.Unspecified
		s.joints[i].lateral = [2]skeleton.JointID{skeleton.Unspecified, skeleton.Unspecified}
	}

	if cfg.Up != nil {
		up, err := parseVector(skeleton.Unspecified, "up", cfg.Up)
		if err != nil {
			return nil, err
		}
		n, ok := up.Normalized()
		if !ok {
			return nil, configError(skeleton.Unspecified, "zero up vector")
		}
		s.up = *n
	}

	root, err := parseJoint(cfg.Root)
	if err != nil {
		return nil, err
	}
	s.root = root

	// joints and parents
	for _, jc := range cfg.Joints {
		j, err := parseJoint(jc.Joint)
		if err != nil {
			return nil, err
		}
		if s.present[j] {
			return nil, configError(j, "duplicate joint")
		}
		s.present[j] = true
		info := &s.joints[j]
		info.extremity = jc.Extremity
		info.passthrough = jc.Passthrough
		info.correctInversion = jc.CorrectInversion
		if jc.Parent != "" {
			if info.parent, err = parseJoint(jc.Parent); err != nil {
				return nil, err
			}
		}
		pos := geom.NewVector3(0, 0, 0)
		if jc.Position != nil {
			if pos, err = parseVector(j, "position", jc.Position); err != nil {
				return nil, err
			}
		}
		info.position = *pos
		rot, err := parseRotation(j, jc.Rotation)
		if err != nil {
			return nil, err
		}
		info.rotation = *rot
	}

	if !s.IsInStructure(root) {
		return nil, configError(root, "root joint is not defined")
	}
	for _, j := range s.Joints() {
		info := &s.joints[j]
		if j == root {
			if info.parent != skeleton.Unspecified {
				return nil, configError(j, "root joint must not have a parent")
			}
			continue
		}
		if info.parent == skeleton.Unspecified {
			return nil, configError(j, "no parent (disconnected from root %v)", root)
		}
		if !s.IsInStructure(info.parent) {
			return nil, configError(j, "parent %v is not defined", info.parent)
		}
		if info.parent >= j {
			return nil, configError(j, "parent %v must precede its children", info.parent)
		}
		s.joints[info.parent].children = append(s.joints[info.parent].children, j)
	}

	// aim targets
	for _, jc := range cfg.Joints {
		j, _ := skeleton.ParseJointID(jc.Joint)
		if err := s.resolveTargets(j, jc); err != nil {
			return nil, err
		}
	}

	if cfg.Corrections == nil {
		for j, c := range DefaultCorrections() {
			if s.IsInStructure(j) {
				s.joints[j].correction = c.Quaternion()
			}
		}
	}
	for name, c := range cfg.Corrections {
		j, err := parseJoint(name)
		if err != nil {
			return nil, err
		}
		if !s.IsInStructure(j) {
			return nil, configError(j, "correction for a joint outside the structure")
		}
		if c != nil && !c.IsZero() {
			s.joints[j].correction = c.Quaternion()
		}
	}
	return s, nil
}

func (s *Structure) resolveTargets(j skeleton.JointID, jc *JointConfig) error {
	info := &s.joints[j]
	children := info.children

	if info.extremity {
		if len(children) > 0 {
			return configError(j, "extremity has children %v", children)
		}
		if jc.Child != "" || len(jc.AverageOf) > 0 || len(jc.Lateral) > 0 {
			return configError(j, "extremity has an aim target")
		}
		return nil
	}

	if jc.Child != "" {
		c, err := parseJoint(jc.Child)
		if err != nil {
			return err
		}
		if !s.isChild(j, c) {
			return configError(j, "child %v is not a child of the joint", c)
		}
		info.child = c
	}
	for _, name := range jc.AverageOf {
		c, err := parseJoint(name)
		if err != nil {
			return err
		}
		if !s.isChild(j, c) {
			return configError(j, "averageOf %v is not a child of the joint", c)
		}
		info.averageOf = append(info.averageOf, c)
	}
	if info.child != skeleton.Unspecified && len(info.averageOf) > 0 {
		return configError(j, "both child and averageOf are set")
	}
	if len(jc.Lateral) > 0 {
		if len(jc.Lateral) != 2 {
			return configError(j, "lateral must be a [left, right] pair")
		}
		for i, name := range jc.Lateral {
			c, err := parseJoint(name)
			if err != nil {
				return err
			}
			if !s.isChild(j, c) {
				return configError(j, "lateral %v is not a child of the joint", c)
			}
			info.lateral[i] = c
		}
		if info.lateral[0] == info.lateral[1] {
			return configError(j, "lateral joints must differ")
		}
	}

	if info.child == skeleton.Unspecified && len(info.averageOf) == 0 && len(children) == 1 {
		info.child = children[0]
	}
	solvable := s.IsSolvable(j)
	if info.child == skeleton.Unspecified && len(info.averageOf) == 0 {
		if !solvable {
			return nil
		}
		if len(children) == 0 {
			return configError(j, "joint has no children; mark it as extremity or passthrough")
		}
		return configError(j, "joint has %d children; set child or averageOf", len(children))
	}

	var dir *geom.Vector3
	if jc.Direction != nil {
		var err error
		if dir, err = parseVector(j, "direction", jc.Direction); err != nil {
			return err
		}
	} else if info.child != skeleton.Unspecified {
		p := s.joints[info.child].position
		dir = &p
	} else {
		var points []*geom.Vector3
		for _, c := range info.averageOf {
			points = append(points, &s.joints[c].position)
		}
		dir = geom.Midpoint(points...)
	}
	n, ok := dir.Normalized()
	if !ok {
		if !solvable {
			return nil
		}
		return configError(j, "zero rest direction")
	}
	info.direction = *n
	return nil
}

func (s *Structure) String() string {
	return fmt.Sprintf("Structure(%s, root=%v, joints=%d)", s.name, s.root, len(s.Joints()))
}
