package mmd

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

func TestWriteParse(t *testing.T) {
	m := &Motion{
		ModelName: "初音ミク",
		Bones: []*BoneFrame{
			{Bone: BoneCenter, Frame: 0, Position: geom.Vector3{X: 1, Y: 2, Z: 3}, Rotation: geom.Quaternion{W: 1}, Interpolation: LinearInterpolation},
			{Bone: "左ひじ", Frame: 30, Rotation: geom.Quaternion{X: 0.5, Y: 0.5, Z: 0.5, W: 0.5}, Interpolation: LinearInterpolation},
		},
		Morphs: []*MorphFrame{{Morph: "あ", Frame: 15, Weight: 0.75}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatal(err)
	}
	// header, bones, morphs and three empty sections
	size := 30 + 20 + 4 + 2*(15+4+12+16+64) + 4 + (15 + 4 + 4) + 3*4
	if buf.Len() != size {
		t.Fatal("size", buf.Len(), size)
	}

	parsed, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.ModelName != m.ModelName || len(parsed.Bones) != 2 || len(parsed.Morphs) != 1 {
		t.Fatal("parsed", parsed.ModelName, len(parsed.Bones), len(parsed.Morphs))
	}
	for i, f := range parsed.Bones {
		if *f != *m.Bones[i] {
			t.Error("bone frame", i, f)
		}
	}
	if *parsed.Morphs[0] != *m.Morphs[0] {
		t.Error("morph frame", parsed.Morphs[0])
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(strings.NewReader("Vocaloid Motion Data file")); err == nil {
		t.Error("expected error for truncated header")
	}

	var buf bytes.Buffer
	buf.Write(append([]byte("Vocaloid Motion Data 0001"), make([]byte, 5)...))
	buf.Write(make([]byte, 24))
	if _, err := Parse(&buf); err == nil || !strings.Contains(err.Error(), "Format error") {
		t.Error("expected format error", err)
	}

	var full bytes.Buffer
	Write(&full, &Motion{ModelName: "a", Bones: []*BoneFrame{{Bone: BoneHead}}})
	data := full.Bytes()

	// bone section only
	m, err := Parse(bytes.NewReader(data[:30+20+4+111]))
	if err != nil || len(m.Bones) != 1 {
		t.Error("bone only file", err)
	}

	_, err = Parse(bytes.NewReader(data[:30+20+4+50]))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("truncated bone frame", err)
	}
}

func TestEncodeString(t *testing.T) {
	b, err := encodeString("左中指１", 15)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 15 || b[8] != 0 {
		t.Error("encoded", b)
	}
	// the 8th character does not fit and is dropped whole
	b, _ = encodeString("あいうえおかきく", 15)
	if b[14] != 0 || b[13] == 0 {
		t.Error("truncated", b)
	}
	if _, err := encodeString("🙂", 15); err == nil {
		t.Error("expected encode error")
	}
}

func TestLinearInterpolation(t *testing.T) {
	b := LinearInterpolation
	if b[0] != 20 || b[7] != 20 || b[8] != 107 || b[15] != 107 {
		t.Error("row 0", b[:16])
	}
	if b[16] != 20 || b[16+7] != 107 || b[16+15] != 0 {
		t.Error("row 1", b[16:32])
	}
	if b[48] != 20 || b[48+12] != 107 || b[48+13] != 0 {
		t.Error("row 3", b[48:])
	}
}

func TestFrameNumber(t *testing.T) {
	tests := []struct {
		t    time.Duration
		want uint32
	}{
		{-time.Second, 0},
		{0, 0},
		{time.Second, 30},
		{16 * time.Millisecond, 0},
		{17 * time.Millisecond, 1},
		{2500 * time.Millisecond, 75},
	}
	for _, test := range tests {
		if f := FrameNumber(test.t); f != test.want {
			t.Errorf("FrameNumber(%v) = %v, want %v", test.t, f, test.want)
		}
	}
}

func TestBoneNames(t *testing.T) {
	seen := map[string]bool{}
	for _, j := range skeleton.AllJoints() {
		name, ok := BoneName(j)
		if !ok {
			t.Error("no bone for", j)
			continue
		}
		if seen[name] {
			t.Error("duplicate", name)
		}
		seen[name] = true
		if b, _ := encodeString(name, 15); b[14] != 0 {
			t.Error("bone name too long", name)
		}
		if back, ok := JointForBone(name); !ok || back != j {
			t.Error("JointForBone", name, back)
		}
	}
}

func TestConvertHandedness(t *testing.T) {
	p := ToMMDPosition(&geom.Vector3{X: 0.08, Y: 0.16, Z: 0.8})
	if geom.NewVector3(p.X, p.Y, p.Z).Sub(geom.NewVector3(1, 2, -10)).Len() > 0.0001 {
		t.Error("position", p)
	}
	q := ToMMDRotation(&geom.Quaternion{X: 0.1, Y: 0.2, Z: 0.3, W: 0.9})
	if q != (geom.Quaternion{X: -0.1, Y: -0.2, Z: 0.3, W: 0.9}) {
		t.Error("rotation", q)
	}
}
