package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gingerrexayers/treehash-go/internal/treehash/lib"
)

// Chunks prints the content-defined chunks of a single file, one
// "<offset>,<size>,<hex digest>" line each, followed by the whole-file line.
func Chunks(filePath, algorithm string, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}
	hasher, err := lib.NewHasher(algorithm)
	if err != nil {
		return err
	}

	res, err := hasher.ChunkFile(filePath)
	if err != nil {
		return fmt.Errorf("chunk: %w", err)
	}

	for _, c := range res.Chunks {
		if _, err := fmt.Fprintf(out, "%d,%d,%s\n", c.Offset, c.Size, hex.EncodeToString(c.Digest)); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "# %s%s%s (%d chunks, %s)\n",
		res.Path, lib.Separator, hex.EncodeToString(res.Digest), len(res.Chunks), humanize.IBytes(uint64(res.BytesRead)))
	return err
}
