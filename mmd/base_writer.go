package mmd

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/encoding/japanese"
)

// baseWriter writes little endian values. The first error is kept and later
// writes are skipped.
type baseWriter struct {
	w   io.Writer
	err error
}

func (p *baseWriter) write(v interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.err = binary.Write(p.w, binary.LittleEndian, v)
	return p.err
}

func (p *baseWriter) writeUint32(v uint32) {
	p.write(&v)
}

func (p *baseWriter) writeFloat(v float32) float32 {
	p.write(&v)
	return v
}

// writeString writes s as Shift_JIS padded with zeros to size bytes.
func (p *baseWriter) writeString(s string, size int) {
	b, err := encodeString(s, size)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return
	}
	p.write(b)
}

// encodeString encodes s as Shift_JIS into size bytes. Characters that do not
// fit are dropped whole.
func encodeString(s string, size int) ([]byte, error) {
	enc := japanese.ShiftJIS.NewEncoder()
	b := make([]byte, 0, size)
	for _, r := range s {
		c, err := enc.Bytes([]byte(string(r)))
		if err != nil {
			return nil, fmt.Errorf("cannot encode %q: %w", s, err)
		}
		if len(b)+len(c) > size {
			break
		}
		b = append(b, c...)
	}
	return append(b, make([]byte, size-len(b))...), nil
}
