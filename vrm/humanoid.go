package vrm

import "github.com/binzume/mocapretarget/skeleton"

// RequiredBones must be mapped in a valid VRM 0.x humanoid.
var RequiredBones = []string{
	"hips", "spine", "chest", "neck", "head",
	"leftUpperArm", "leftLowerArm", "leftHand",
	"rightUpperArm", "rightLowerArm", "rightHand",
	"leftUpperLeg", "leftLowerLeg", "leftFoot",
	"rightUpperLeg", "rightLowerLeg", "rightFoot",
}

var humanoidBones = map[skeleton.JointID]string{
	skeleton.SpineBase:     "hips",
	skeleton.SpineMid:      "spine",
	skeleton.SpineShoulder: "chest",
	skeleton.Neck:          "neck",
	skeleton.Head:          "head",

	skeleton.ShoulderLeft: "leftUpperArm",
	skeleton.ElbowLeft:    "leftLowerArm",
	skeleton.WristLeft:    "leftHand",
	skeleton.HandLeft:     "leftMiddleProximal",
	skeleton.HandTipLeft:  "leftMiddleDistal",
	skeleton.ThumbLeft:    "leftThumbProximal",

	skeleton.ShoulderRight: "rightUpperArm",
	skeleton.ElbowRight:    "rightLowerArm",
	skeleton.WristRight:    "rightHand",
	skeleton.HandRight:     "rightMiddleProximal",
	skeleton.HandTipRight:  "rightMiddleDistal",
	skeleton.ThumbRight:    "rightThumbProximal",

	skeleton.HipLeft:   "leftUpperLeg",
	skeleton.KneeLeft:  "leftLowerLeg",
	skeleton.AnkleLeft: "leftFoot",
	skeleton.FootLeft:  "leftToes",

	skeleton.HipRight:   "rightUpperLeg",
	skeleton.KneeRight:  "rightLowerLeg",
	skeleton.AnkleRight: "rightFoot",
	skeleton.FootRight:  "rightToes",
}

// BoneName returns the humanoid bone driven by a joint.
func BoneName(j skeleton.JointID) (string, bool) {
	name, ok := humanoidBones[j]
	return name, ok
}

// JointForBone returns the joint that drives a humanoid bone.
func JointForBone(name string) (skeleton.JointID, bool) {
	for j, n := range humanoidBones {
		if n == name {
			return j, true
		}
	}
	return skeleton.Unspecified, false
}

// MapJoints adds a humanoid bone for every joint in nodes.
func (v *VRM) MapJoints(nodes map[skeleton.JointID]int) {
	for _, j := range skeleton.AllJoints() {
		node, ok := nodes[j]
		if !ok {
			continue
		}
		if name, ok := BoneName(j); ok {
			v.SetBone(name, node)
		}
	}
}
