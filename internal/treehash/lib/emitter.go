package lib

import (
	"bufio"
	"encoding/hex"
	"io"

	"github.com/gingerrexayers/treehash-go/internal/treehash/types"
)

// Separator sits between the path and the digest on every output line.
const Separator = ","

// Emitter writes one "<path>,<hex digest>" line per result to a buffered sink.
// Nothing reaches the underlying writer until the buffer fills or Flush is called.
type Emitter struct {
	w   *bufio.Writer
	hex []byte
}

// NewEmitter wraps w in a buffered writer.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: bufio.NewWriter(w)}
}

// Emit formats a result as a single line.
func (e *Emitter) Emit(res types.DigestResult) error {
	if n := hex.EncodedLen(len(res.Digest)); cap(e.hex) < n {
		e.hex = make([]byte, n)
	}
	e.hex = e.hex[:hex.EncodedLen(len(res.Digest))]
	hex.Encode(e.hex, res.Digest)

	e.w.WriteString(res.Path)
	e.w.WriteString(Separator)
	e.w.Write(e.hex)
	return e.w.WriteByte('\n')
}

// Flush pushes buffered lines to the underlying writer.
func (e *Emitter) Flush() error {
	return e.w.Flush()
}
