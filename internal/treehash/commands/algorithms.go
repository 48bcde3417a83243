package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/gingerrexayers/treehash-go/internal/treehash/lib"
)

// Algorithms lists the supported digests and their output size in bits.
func Algorithms(out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}
	for _, a := range lib.Algorithms() {
		marker := ""
		if a.Name == lib.DefaultAlgorithm {
			marker = " (default)"
		}
		if _, err := fmt.Fprintf(out, "%-10s %d bits%s\n", a.Name, a.Size*8, marker); err != nil {
			return err
		}
	}
	return nil
}
