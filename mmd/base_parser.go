package mmd

import (
	"bytes"
	"encoding/binary"
	"io"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// baseParser reads little endian values. The first error is kept and later
// reads are skipped.
type baseParser struct {
	r   io.Reader
	err error
}

func (p *baseParser) read(v interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.err = binary.Read(p.r, binary.LittleEndian, v)
	return p.err
}

func (p *baseParser) readUint32() uint32 {
	var v uint32
	p.read(&v)
	return v
}

func (p *baseParser) readFloat() float32 {
	var v float32
	p.read(&v)
	return v
}

// readString reads a zero padded Shift_JIS string of size bytes.
func (p *baseParser) readString(size int) string {
	b := make([]byte, size)
	if p.read(b) != nil {
		return ""
	}
	utf8Data, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), bytes.SplitN(b, []byte{0}, 2)[0])
	if err != nil {
		p.err = err
	}
	return string(utf8Data)
}
