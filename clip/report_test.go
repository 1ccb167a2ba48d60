package clip

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
)

func TestWriteRotationCSV(t *testing.T) {
	c := chainClip(t, 0, 90)

	var buf bytes.Buffer
	if err := WriteRotationCSV(&buf, c, []skeleton.JointID{skeleton.SpineMid}); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatal("rows", len(rows))
	}
	header := []string{"time", "held", "SpineMid.x", "SpineMid.y", "SpineMid.z"}
	for i, h := range header {
		if rows[0][i] != h {
			t.Error("header", rows[0])
		}
	}
	want := [][]float64{{0, 0, 0, 0}, {1, 0, 0, -90}}
	for i, w := range want {
		row := rows[i+1]
		for k, col := range []int{0, 2, 3, 4} {
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(v-w[k]) > 0.01 {
				t.Errorf("row %d col %d = %v, want %v", i, col, v, w[k])
			}
		}
	}

	buf.Reset()
	if err := WriteRotationCSV(&buf, c, nil); err != nil {
		t.Fatal(err)
	}
	rows, _ = csv.NewReader(&buf).ReadAll()
	if len(rows[0]) != 2+3*3 {
		t.Error("columns", len(rows[0]))
	}
}

func TestRestAngle(t *testing.T) {
	id := geom.NewIdentityQuaternion()
	tests := []struct {
		q    *geom.Quaternion
		want float64
	}{
		{id, 0},
		{id.Scale(-1), 0},
		{geom.NewQuaternionFromAxisAngle(geom.NewVector3(0, 1, 0), math.Pi/2), 90},
		{geom.NewQuaternionFromAxisAngle(geom.NewVector3(1, 0, 0), -math.Pi/3), 60},
	}
	for _, test := range tests {
		if a := RestAngle(id, test.q); math.Abs(a-test.want) > 0.01 {
			t.Errorf("RestAngle(%v) = %v, want %v", test.q, a, test.want)
		}
	}
}

func TestSaveRestAnglePlot(t *testing.T) {
	c := chainClip(t, 0, 30, 60)
	pts := c.RestAngles(skeleton.SpineMid)
	if pts.Len() != 3 || math.Abs(pts[2].Y-60) > 0.01 || pts[2].X != 2 {
		t.Error("points", pts)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "bend.png")
	if err := SaveRestAnglePlot(c, nil, path); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Error("plot not written", err)
	}

	if err := SaveRestAnglePlot(&Clip{Name: "empty", Structure: c.Structure, Rest: c.Rest}, nil, path); err == nil {
		t.Error("expected error for empty clip")
	}

	csvPath := filepath.Join(dir, "bend.csv")
	if err := SaveRotationCSV(c, csvPath); err != nil {
		t.Fatal(err)
	}
}
