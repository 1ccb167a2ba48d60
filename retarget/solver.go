package retarget

import (
	"fmt"
	"math"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/rig"
	"github.com/binzume/mocapretarget/skeleton"
)

// Result is a retargeted frame.
type Result struct {
	Pose *rig.Pose
	// Degenerate lists joints whose captured direction collapsed to zero
	// length and kept their rest rotation.
	Degenerate []skeleton.JointID
}

// Solver retargets snapshots onto one rig. It only reads the structure and
// rest pose, so a Solver can be shared between goroutines.
type Solver struct {
	structure *rig.Structure
	rest      *rig.Pose
}

func NewSolver(structure *rig.Structure, rest *rig.Pose) (*Solver, error) {
	for _, j := range structure.Joints() {
		if !rest.Has(j) {
			return nil, fmt.Errorf("rest pose has no joint %v", j)
		}
	}
	return &Solver{structure: structure, rest: rest}, nil
}

func (s *Solver) Structure() *rig.Structure {
	return s.structure
}

func (s *Solver) Rest() *rig.Pose {
	return s.rest
}

// RetargetFrame poses the rig to match snap.
func RetargetFrame(snap *skeleton.Snapshot, structure *rig.Structure, rest *rig.Pose) (*Result, error) {
	solver, err := NewSolver(structure, rest)
	if err != nil {
		return nil, err
	}
	return solver.Solve(snap)
}

// Solve poses the rig to match snap. Joints are visited in topological order so
// every parent is resolved before its children.
//
// Joints that are not solved (extremities, passthrough joints and an unsolved
// root) keep the local position and rotation of the rest pose bit-for-bit.
// Their World matrix is rebuilt from the solved parent, so it differs from the
// rest pose whenever an ancestor moved.
func (s *Solver) Solve(snap *skeleton.Snapshot) (*Result, error) {
	out := rig.NewPose()
	result := &Result{Pose: out}

	root := s.structure.Root()
	if !s.structure.SolveRoot() {
		r, _ := s.rest.Joint(root)
		out.Set(root, r)
	}

	for _, j := range skeleton.AllJoints() {
		if out.Has(j) || !s.structure.IsInStructure(j) {
			continue
		}
		restJoint, _ := s.rest.Joint(j)

		var parentWorld *geom.Matrix4
		if p := s.structure.Parent(j); p != skeleton.Unspecified {
			parentWorld, _ = out.World(p)
		}

		if !s.structure.IsSolvable(j) {
			restJoint.UpdateWorld(parentWorld)
			out.Set(j, restJoint)
			continue
		}

		rj, degenerate, err := s.solveJoint(j, snap, &restJoint, parentWorld)
		if err != nil {
			return nil, err
		}
		result.Degenerate = append(result.Degenerate, degenerate...)
		out.Set(j, *rj)
	}
	return result, nil
}

func (s *Solver) position(snap *skeleton.Snapshot, j, solving skeleton.JointID) (*geom.Vector3, error) {
	p, ok := snap.Position(j)
	if !ok {
		return nil, &MissingJointError{Joint: j, Solving: solving}
	}
	return p, nil
}

// capturedDirection returns the aim vector of j in capture space.
func (s *Solver) capturedDirection(j skeleton.JointID, snap *skeleton.Snapshot) (*geom.Vector3, error) {
	from, err := s.position(snap, j, j)
	if err != nil {
		return nil, err
	}
	if c := s.structure.Child(j); c != skeleton.Unspecified {
		to, err := s.position(snap, c, j)
		if err != nil {
			return nil, err
		}
		return to.Sub(from), nil
	}
	var points []*geom.Vector3
	for _, c := range s.structure.AverageOf(j) {
		p, err := s.position(snap, c, j)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return geom.Midpoint(points...).Sub(from), nil
}

// invertsAlongUp reports whether the configured rest direction of j and the
// rest direction to its averaged children lie on opposite sides of up.
func (s *Solver) invertsAlongUp(j skeleton.JointID, restJoint *rig.RigJoint, frame *geom.Matrix4) bool {
	var points []*geom.Vector3
	for _, c := range s.structure.AverageOf(j) {
		r, _ := s.rest.Joint(c)
		points = append(points, &r.Position)
	}
	if c := s.structure.Child(j); c != skeleton.Unspecified {
		r, _ := s.rest.Joint(c)
		points = append(points, &r.Position)
	}
	up := s.structure.Up()
	d1 := frame.ApplyToDirection(&restJoint.Direction).Dot(up)
	d2 := frame.ApplyToDirection(geom.Midpoint(points...)).Dot(up)
	return d1*d2 < 0
}

func (s *Solver) solveJoint(j skeleton.JointID, snap *skeleton.Snapshot, restJoint *rig.RigJoint, parentWorld *geom.Matrix4) (*rig.RigJoint, []skeleton.JointID, error) {
	captured, err := s.capturedDirection(j, snap)
	if err != nil {
		return nil, nil, err
	}
	var lateral *geom.Vector3
	if l, r, ok := s.structure.Lateral(j); ok {
		pl, err := s.position(snap, l, j)
		if err != nil {
			return nil, nil, err
		}
		pr, err := s.position(snap, r, j)
		if err != nil {
			return nil, nil, err
		}
		lateral = pr.Sub(pl)
	}

	// rest frame of j in capture space
	frame := &restJoint.Local
	if parentWorld != nil {
		frame = parentWorld.Mul(&restJoint.Local)
	}

	// The vertical component of the captured direction is reflected across the
	// plane normal to up. This matches the rig only while the capture stays
	// upright (turns about up): a tilted pelvis comes out mirrored.
	if s.structure.CorrectInversion(j) && s.invertsAlongUp(j, restJoint, frame) {
		up := s.structure.Up()
		captured = captured.Sub(up.Scale(2 * captured.Dot(up)))
	}

	restDir := &restJoint.Direction
	inv := frame.RigidInverse()
	local, ok := inv.ApplyToDirection(captured).Normalized()
	if !ok {
		// no usable direction: keep the rest rotation
		rj := *restJoint
		rj.UpdateWorld(parentWorld)
		return &rj, []skeleton.JointID{j}, nil
	}
	delta := geom.ShortestArc(restDir, local)

	var degenerate []skeleton.JointID
	secondary := geom.NewIdentityQuaternion()
	if lateral != nil {
		if twist, ok := s.lateralTwist(j, restDir, delta, inv.ApplyToDirection(lateral)); ok {
			secondary = twist
		} else {
			degenerate = append(degenerate, j)
		}
	}

	// rest * delta * secondary * correction
	rot := restJoint.Rotation.Mul(delta).Mul(secondary)
	if c, ok := s.structure.Correction(j); ok {
		rot = rot.Mul(c)
	}
	rot.Normalize()

	rj := rig.NewRigJoint(&restJoint.Position, rot, &restJoint.Direction)
	rj.UpdateWorld(parentWorld)
	return &rj, degenerate, nil
}

// lateralTwist returns the rotation about restDir that aligns the rest lateral
// axis of j with the captured one. captured is in the rest frame of j and is
// brought back through delta before both axes are projected onto the plane
// perpendicular to restDir.
func (s *Solver) lateralTwist(j skeleton.JointID, restDir *geom.Vector3, delta *geom.Quaternion, captured *geom.Vector3) (*geom.Quaternion, bool) {
	l, r, _ := s.structure.Lateral(j)
	rl, _ := s.rest.Joint(l)
	rr, _ := s.rest.Joint(r)
	restLateral := rr.Position.Sub(&rl.Position)

	a, ok1 := project(restLateral, restDir).Normalized()
	b, ok2 := project(delta.Inverse().ApplyTo(captured), restDir).Normalized()
	if !ok1 || !ok2 {
		return nil, false
	}
	angle := math.Atan2(float64(restDir.Dot(a.Cross(b))), float64(a.Dot(b)))
	return geom.NewQuaternionFromAxisAngle(restDir, angle), true
}

// project removes the component of v along the unit vector n.
func project(v, n *geom.Vector3) *geom.Vector3 {
	return v.Sub(n.Scale(v.Dot(n)))
}
