package retarget

import (
	"errors"
	"fmt"

	"github.com/binzume/mocapretarget/skeleton"
)

// ErrMissingJointData is matched when a snapshot lacks a joint the solver needs.
var ErrMissingJointData = errors.New("missing joint data")

// MissingJointError names the absent joint and the joint being solved when it was needed.
type MissingJointError struct {
	Joint   skeleton.JointID
	Solving skeleton.JointID
}

func (e *MissingJointError) Error() string {
	if e.Joint == e.Solving {
		return fmt.Sprintf("retarget: %v: missing joint data", e.Joint)
	}
	return fmt.Sprintf("retarget: %v: missing joint data for %v", e.Solving, e.Joint)
}

func (e *MissingJointError) Is(target error) bool {
	return target == ErrMissingJointData
}
