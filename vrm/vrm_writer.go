package vrm

import (
	"io"

	"github.com/qmuntal/gltf"
)

// Write vrm file
func Write(doc *Document, w io.Writer) error {
	e := gltf.NewEncoder(w)
	e.AsBinary = true
	return e.Encode((*gltf.Document)(doc))
}
