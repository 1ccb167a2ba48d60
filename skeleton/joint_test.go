package skeleton

import "testing"

func TestJointNames(t *testing.T) {
	for _, j := range AllJoints() {
		j2, err := ParseJointID(j.String())
		if err != nil || j2 != j {
			t.Error("ParseJointID: ", j, j2, err)
		}
	}

	for _, c := range []struct {
		name string
		id   JointID
	}{
		{"spinebase", SpineBase},
		{"KNEELEFT", KneeLeft},
		{" HandTipRight ", HandTipRight},
	} {
		if j, err := ParseJointID(c.name); err != nil || j != c.id {
			t.Error("ParseJointID: ", c.name, j, err)
		}
	}

	if j, err := ParseJointID("Tail"); err == nil || j != Unspecified {
		t.Error("unknown joint should be an error: ", j)
	}

	if Unspecified.Valid() || JointID(JointCount).Valid() || !FootRight.Valid() {
		t.Error("Valid()")
	}
	if Unspecified.String() != "Unspecified" {
		t.Error(Unspecified.String())
	}
}

func TestJointOrder(t *testing.T) {
	joints := AllJoints()
	if len(joints) != JointCount || joints[0] != SpineBase || joints[JointCount-1] != FootRight {
		t.Error("AllJoints: ", joints)
	}
	for i, j := range joints {
		if int(j) != i {
			t.Error("AllJoints is not ordered: ", joints)
		}
	}
}
