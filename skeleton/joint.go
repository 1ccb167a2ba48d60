package skeleton

import (
	"fmt"
	"strings"
)

// JointID identifies a joint shared by sensor skeletons and rig targets.
// The declaration order is topological: a parent always precedes its children.
type JointID int

const (
	Unspecified JointID = -1
)

const (
	SpineBase JointID = iota
	SpineMid
	SpineShoulder
	Neck
	Head
	ShoulderLeft
	ElbowLeft
	WristLeft
	HandLeft
	HandTipLeft
	ThumbLeft
	ShoulderRight
	ElbowRight
	WristRight
	HandRight
	HandTipRight
	ThumbRight
	HipLeft
	KneeLeft
	AnkleLeft
	FootLeft
	HipRight
	KneeRight
	AnkleRight
	FootRight

	JointCount = int(iota)
)

var jointNames = [JointCount]string{
	"SpineBase",
	"SpineMid",
	"SpineShoulder",
	"Neck",
	"Head",
	"ShoulderLeft",
	"ElbowLeft",
	"WristLeft",
	"HandLeft",
	"HandTipLeft",
	"ThumbLeft",
	"ShoulderRight",
	"ElbowRight",
	"WristRight",
	"HandRight",
	"HandTipRight",
	"ThumbRight",
	"HipLeft",
	"KneeLeft",
	"AnkleLeft",
	"FootLeft",
	"HipRight",
	"KneeRight",
	"AnkleRight",
	"FootRight",
}

var jointsByName = func() map[string]JointID {
	m := map[string]JointID{}
	for i, n := range jointNames {
		m[strings.ToLower(n)] = JointID(i)
	}
	return m
}()

// Valid reports whether j is one of the enumerated joints.
func (j JointID) Valid() bool {
	return j >= 0 && int(j) < JointCount
}

func (j JointID) String() string {
	if !j.Valid() {
		if j == Unspecified {
			return "Unspecified"
		}
		return fmt.Sprintf("JointID(%d)", int(j))
	}
	return jointNames[j]
}

// ParseJointID returns the joint with the given name. Case is ignored.
func ParseJointID(name string) (JointID, error) {
	if j, ok := jointsByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return j, nil
	}
	return Unspecified, fmt.Errorf("unknown joint: %q", name)
}

// AllJoints returns every joint in topological order.
func AllJoints() []JointID {
	joints := make([]JointID, JointCount)
	for i := range joints {
		joints[i] = JointID(i)
	}
	return joints
}

func (j JointID) MarshalText() ([]byte, error) {
	if !j.Valid() {
		return nil, fmt.Errorf("invalid joint: %d", int(j))
	}
	return []byte(jointNames[j]), nil
}

func (j *JointID) UnmarshalText(b []byte) error {
	id, err := ParseJointID(string(b))
	if err != nil {
		return err
	}
	*j = id
	return nil
}
