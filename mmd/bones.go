package mmd

import "github.com/binzume/mocapretarget/skeleton"

// Standard bone names of MMD models.
const (
	BoneCenter     = "センター"
	BoneUpperBody  = "上半身"
	BoneUpperBody2 = "上半身2"
	BoneNeck       = "首"
	BoneHead       = "頭"
)

var boneNames = map[skeleton.JointID]string{
	skeleton.SpineBase:     BoneCenter,
	skeleton.SpineMid:      BoneUpperBody,
	skeleton.SpineShoulder: BoneUpperBody2,
	skeleton.Neck:          BoneNeck,
	skeleton.Head:          BoneHead,

	skeleton.ShoulderLeft: "左腕",
	skeleton.ElbowLeft:    "左ひじ",
	skeleton.WristLeft:    "左手首",
	skeleton.HandLeft:     "左中指１",
	skeleton.HandTipLeft:  "左中指３",
	skeleton.ThumbLeft:    "左親指１",

	skeleton.ShoulderRight: "右腕",
	skeleton.ElbowRight:    "右ひじ",
	skeleton.WristRight:    "右手首",
	skeleton.HandRight:     "右中指１",
	skeleton.HandTipRight:  "右中指３",
	skeleton.ThumbRight:    "右親指１",

	skeleton.HipLeft:   "左足",
	skeleton.KneeLeft:  "左ひざ",
	skeleton.AnkleLeft: "左足首",
	skeleton.FootLeft:  "左つま先",

	skeleton.HipRight:   "右足",
	skeleton.KneeRight:  "右ひざ",
	skeleton.AnkleRight: "右足首",
	skeleton.FootRight:  "右つま先",
}

// BoneName returns the MMD bone driven by a joint.
func BoneName(j skeleton.JointID) (string, bool) {
	name, ok := boneNames[j]
	return name, ok
}

// JointForBone returns the joint that drives an MMD bone.
func JointForBone(name string) (skeleton.JointID, bool) {
	for j, n := range boneNames {
		if n == name {
			return j, true
		}
	}
	return skeleton.Unspecified, false
}
