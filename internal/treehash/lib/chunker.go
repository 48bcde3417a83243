package lib

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/aclements/go-rabin/rabin"
	"github.com/gingerrexayers/treehash-go/internal/treehash/types"
)

// Constants for the Rabin chunker configuration.
const (
	minChunkSize = 4 * 1024  // 4KB
	avgChunkSize = 8 * 1024  // 8KB
	maxChunkSize = 16 * 1024 // 16KB

	// A 64-bit irreducible polynomial over GF(2).
	defaultPoly       = rabin.Poly64
	defaultWindowSize = 64
)

// rabinTable is expensive to build, so it is shared.
var rabinTable = rabin.NewTable(defaultPoly, defaultWindowSize)

// teeBuffer collects the bytes the chunker has read but not yet assigned to
// a chunk, and feeds every byte into the whole-file digest on the way.
type teeBuffer struct {
	whole   io.Writer
	pending bytes.Buffer
}

func (t *teeBuffer) Write(p []byte) (int, error) {
	if _, err := t.whole.Write(p); err != nil {
		return 0, err
	}
	return t.pending.Write(p)
}

// ChunkFile splits a file into content-defined chunks with Rabin
// fingerprinting and digests every chunk as well as the whole file. The file
// is streamed; at most one chunk plus the chunker's read-ahead is in memory.
// Identical runs of content in different files produce identical chunk
// digests, which makes them usable as deduplication candidates.
func (h *Hasher) ChunkFile(filePath string) (types.DigestResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return types.DigestResult{}, err
	}
	defer file.Close()

	whole := h.algo.New()
	tee := &teeBuffer{whole: whole}
	src := io.TeeReader(file, tee)
	chunker := rabin.NewChunker(rabinTable, src, minChunkSize, avgChunkSize, maxChunkSize)

	var chunks []types.ChunkRef
	var offset int64
	for {
		length, err := chunker.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return types.DigestResult{}, err
		}
		// An exhausted reader yields a zero-length cut before EOF.
		if length == 0 {
			break
		}

		data := tee.pending.Next(length)
		d := h.algo.New()
		d.Write(data)
		chunks = append(chunks, types.ChunkRef{Offset: offset, Size: int64(length), Digest: d.Sum(nil)})
		offset += int64(length)
	}

	// The chunker may stop short of the reader's end; fold anything left in.
	if _, err := io.Copy(io.Discard, src); err != nil {
		return types.DigestResult{}, err
	}
	if rest := tee.pending.Len(); rest > 0 {
		d := h.algo.New()
		d.Write(tee.pending.Next(rest))
		chunks = append(chunks, types.ChunkRef{Offset: offset, Size: int64(rest), Digest: d.Sum(nil)})
		offset += int64(rest)
	}

	return types.DigestResult{
		Path:      filePath,
		Digest:    whole.Sum(nil),
		BytesRead: offset,
		Chunks:    chunks,
	}, nil
}
