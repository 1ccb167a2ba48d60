package mmd

import (
	"errors"
	"fmt"
	"io"
)

// VMDParser is parser for .vmd animation.
type VMDParser struct {
	baseParser
}

// NewVMDParser returns new parser.
func NewVMDParser(r io.Reader) *VMDParser {
	return &VMDParser{baseParser: baseParser{r: r}}
}

// Parse reads the bone and morph sections. Older files end after the bone
// section and are accepted.
func (p *VMDParser) Parse() (*Motion, error) {
	var motion Motion

	formatName := p.readString(30)
	if p.err != nil {
		return nil, p.err
	}
	if formatName != FormatName {
		return nil, fmt.Errorf("Format error: %v != %v", formatName, FormatName)
	}

	motion.ModelName = p.readString(20)

	frames := p.readUint32()
	for i := uint32(0); i < frames && p.err == nil; i++ {
		f := &BoneFrame{}
		f.Bone = p.readString(15)
		f.Frame = p.readUint32()
		p.read(&f.Position)
		p.read(&f.Rotation)
		p.read(&f.Interpolation)
		motion.Bones = append(motion.Bones, f)
	}
	if p.err != nil {
		return nil, p.err
	}

	frames = p.readUint32()
	if errors.Is(p.err, io.EOF) {
		return &motion, nil
	}
	for i := uint32(0); i < frames && p.err == nil; i++ {
		f := &MorphFrame{}
		f.Morph = p.readString(15)
		f.Frame = p.readUint32()
		f.Weight = p.readFloat()
		motion.Morphs = append(motion.Morphs, f)
	}
	if p.err != nil {
		return nil, p.err
	}
	return &motion, nil
}

// Parse vmd data
func Parse(r io.Reader) (*Motion, error) {
	return NewVMDParser(r).Parse()
}
