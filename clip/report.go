package clip

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/binzume/mocapretarget/geom"
	"github.com/binzume/mocapretarget/skeleton"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WriteRotationCSV writes one row per frame with the local rotation of each
// joint as ZXY Euler angles in degrees. A nil joints writes every rig joint.
func WriteRotationCSV(w io.Writer, c *Clip, joints []skeleton.JointID) error {
	if joints == nil {
		joints = c.Structure.Joints()
	}
	cw := csv.NewWriter(w)
	header := []string{"time", "held"}
	for _, j := range joints {
		header = append(header, j.String()+".x", j.String()+".y", j.String()+".z")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	rotations := make([][]*geom.Quaternion, len(joints))
	for i, j := range joints {
		rotations[i] = c.Rotations(j)
	}
	for fi, f := range c.Frames {
		row := []string{formatFloat(f.Time.Seconds()), strconv.FormatBool(f.Held)}
		for i := range joints {
			e := geom.NewEulerFromQuaternion(rotations[i][fi], geom.RotationOrderZXY)
			row = append(row,
				formatFloat(geom.RadToDeg(float64(e.X))),
				formatFloat(geom.RadToDeg(float64(e.Y))),
				formatFloat(geom.RadToDeg(float64(e.Z))))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// RestAngle returns the angle in degrees between q and the rest rotation.
func RestAngle(rest, q *geom.Quaternion) float64 {
	d := math.Abs(float64(rest.Dot(q)))
	if d > 1 {
		d = 1
	}
	return geom.RadToDeg(2 * math.Acos(d))
}

// RestAngles returns the time in seconds and the angle from rest for each frame.
func (c *Clip) RestAngles(j skeleton.JointID) plotter.XYs {
	rest, _ := c.Rest.Joint(j)
	rotations := c.Rotations(j)
	pts := make(plotter.XYs, len(c.Frames))
	for i, f := range c.Frames {
		pts[i] = plotter.XY{X: f.Time.Seconds(), Y: RestAngle(&rest.Rotation, rotations[i])}
	}
	return pts
}

// PlotRestAngles draws how far each joint turns away from its rest rotation
// over the clip. A nil joints plots every solvable joint.
func PlotRestAngles(c *Clip, joints []skeleton.JointID) (*plot.Plot, error) {
	if joints == nil {
		for _, j := range c.Structure.Joints() {
			if c.Structure.IsSolvable(j) {
				joints = append(joints, j)
			}
		}
	}
	p := plot.New()
	p.Title.Text = c.Name
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "angle from rest (deg)"

	var lines []interface{}
	for _, j := range joints {
		lines = append(lines, j.String(), c.RestAngles(j))
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveRestAnglePlot renders the plot to path. The image format follows the
// file extension.
func SaveRestAnglePlot(c *Clip, joints []skeleton.JointID, path string) error {
	if len(c.Frames) == 0 {
		return fmt.Errorf("clip %q has no frames", c.Name)
	}
	p, err := PlotRestAngles(c, joints)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func SaveRotationCSV(c *Clip, path string) error {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return WriteRotationCSV(w, c, nil)
}
