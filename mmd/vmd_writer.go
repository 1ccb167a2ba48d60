package mmd

import (
	"io"
	"os"
)

// VMDWriter writes .vmd animation.
type VMDWriter struct {
	baseWriter
}

func NewVMDWriter(w io.Writer) *VMDWriter {
	return &VMDWriter{baseWriter: baseWriter{w: w}}
}

func (w *VMDWriter) Write(m *Motion) error {
	w.writeString(FormatName, 30)
	w.writeString(m.ModelName, 20)

	w.writeUint32(uint32(len(m.Bones)))
	for _, f := range m.Bones {
		w.writeString(f.Bone, 15)
		w.writeUint32(f.Frame)
		w.write(&f.Position)
		w.write(&f.Rotation)
		w.write(&f.Interpolation)
	}

	w.writeUint32(uint32(len(m.Morphs)))
	for _, f := range m.Morphs {
		w.writeString(f.Morph, 15)
		w.writeUint32(f.Frame)
		w.writeFloat(f.Weight)
	}

	// camera, light, self shadow
	w.writeUint32(0)
	w.writeUint32(0)
	w.writeUint32(0)
	return w.err
}

// Write vmd data
func Write(w io.Writer, m *Motion) error {
	return NewVMDWriter(w).Write(m)
}

func Save(m *Motion, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, m)
}
