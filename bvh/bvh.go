// Package bvh writes Biovision Hierarchy motion files.
package bvh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Joint is one node of the hierarchy. A joint without children gets an end
// site at EndSite.
type Joint struct {
	Name     string
	Offset   [3]float64
	Channels []string
	Children []*Joint
	EndSite  [3]float64
}

var (
	RootChannels  = []string{"Xposition", "Yposition", "Zposition", "Zrotation", "Xrotation", "Yrotation"}
	JointChannels = []string{"Zrotation", "Xrotation", "Yrotation"}
)

// Motion is a hierarchy and its frames. Each frame holds the channel values
// of all joints in depth first order.
type Motion struct {
	Root      *Joint
	FrameTime float64
	Frames    [][]float64
}

// ChannelCount returns the number of values per frame.
func (m *Motion) ChannelCount() int {
	n := 0
	m.Walk(func(j *Joint, depth int) {
		n += len(j.Channels)
	})
	return n
}

// Walk visits the joints depth first.
func (m *Motion) Walk(f func(j *Joint, depth int)) {
	var walk func(j *Joint, depth int)
	walk = func(j *Joint, depth int) {
		f(j, depth)
		for _, c := range j.Children {
			walk(c, depth+1)
		}
	}
	if m.Root != nil {
		walk(m.Root, 0)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func writeJoint(w *bufio.Writer, j *Joint, depth int, root bool) {
	indent := strings.Repeat("\t", depth)
	kind := "JOINT"
	if root {
		kind = "ROOT"
	}
	fmt.Fprintf(w, "%s%s %s\n%s{\n", indent, kind, j.Name, indent)
	fmt.Fprintf(w, "%s\tOFFSET %s %s %s\n", indent, formatFloat(j.Offset[0]), formatFloat(j.Offset[1]), formatFloat(j.Offset[2]))
	fmt.Fprintf(w, "%s\tCHANNELS %d %s\n", indent, len(j.Channels), strings.Join(j.Channels, " "))
	for _, c := range j.Children {
		writeJoint(w, c, depth+1, false)
	}
	if len(j.Children) == 0 {
		fmt.Fprintf(w, "%s\tEnd Site\n%s\t{\n", indent, indent)
		fmt.Fprintf(w, "%s\t\tOFFSET %s %s %s\n", indent, formatFloat(j.EndSite[0]), formatFloat(j.EndSite[1]), formatFloat(j.EndSite[2]))
		fmt.Fprintf(w, "%s\t}\n", indent)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

// Write writes the hierarchy and motion sections.
func Write(out io.Writer, m *Motion) error {
	if m.Root == nil {
		return errors.New("bvh: no root joint")
	}
	n := m.ChannelCount()
	for i, f := range m.Frames {
		if len(f) != n {
			return fmt.Errorf("bvh: frame %d has %d values, want %d", i, len(f), n)
		}
	}

	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "HIERARCHY")
	writeJoint(w, m.Root, 0, true)
	fmt.Fprintln(w, "MOTION")
	fmt.Fprintf(w, "Frames: %d\n", len(m.Frames))
	fmt.Fprintf(w, "Frame Time: %s\n", formatFloat(m.FrameTime))
	for _, f := range m.Frames {
		values := make([]string, len(f))
		for i, v := range f {
			values[i] = formatFloat(v)
		}
		fmt.Fprintln(w, strings.Join(values, " "))
	}
	return w.Flush()
}

func Save(m *Motion, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, m)
}
