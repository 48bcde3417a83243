package lib

import (
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gingerrexayers/treehash-go/internal/treehash/types"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is the digest used when none is requested.
const DefaultAlgorithm = "sha256"

// copyBufferSize bounds how much of a file is held in memory while hashing.
const copyBufferSize = 64 * 1024

// Algorithm describes one supported digest.
type Algorithm struct {
	Name string
	// Size is the digest length in bytes.
	Size int
	New  func() hash.Hash
}

var algorithms = map[string]Algorithm{
	"sha256":   {Name: "sha256", Size: sha256.Size, New: sha256.New},
	"sha3-256": {Name: "sha3-256", Size: 32, New: sha3.New256},
	"blake3":   {Name: "blake3", Size: 32, New: func() hash.Hash { return blake3.New() }},
}

// Algorithms returns the supported digests sorted by name.
func Algorithms() []Algorithm {
	list := make([]Algorithm, 0, len(algorithms))
	for _, a := range algorithms {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// AlgorithmNames returns the names accepted by LookupAlgorithm.
func AlgorithmNames() []string {
	var names []string
	for _, a := range Algorithms() {
		names = append(names, a.Name)
	}
	return names
}

// LookupAlgorithm resolves a digest by name. An empty name selects DefaultAlgorithm.
func LookupAlgorithm(name string) (Algorithm, error) {
	if name == "" {
		name = DefaultAlgorithm
	}
	a, ok := algorithms[strings.ToLower(name)]
	if !ok {
		return Algorithm{}, fmt.Errorf("unsupported algorithm %q (supported: %s)", name, strings.Join(AlgorithmNames(), ", "))
	}
	return a, nil
}

// Hasher streams files through a digest. A Hasher reuses its copy buffer and
// is therefore not safe for concurrent use.
type Hasher struct {
	algo Algorithm
	buf  []byte
}

// NewHasher returns a Hasher for the named algorithm.
func NewHasher(algorithm string) (*Hasher, error) {
	a, err := LookupAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	return &Hasher{algo: a, buf: make([]byte, copyBufferSize)}, nil
}

// Algorithm returns the digest this Hasher computes.
func (h *Hasher) Algorithm() Algorithm {
	return h.algo
}

// HashFile calculates the digest of a file's contents by streaming it from
// disk in bounded chunks. Any open or read failure is returned as is; the
// caller decides whether it is fatal.
func (h *Hasher) HashFile(filePath string) (types.DigestResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return types.DigestResult{}, err
	}
	defer file.Close()

	d := h.algo.New()
	n, err := io.CopyBuffer(d, file, h.buf)
	if err != nil {
		return types.DigestResult{}, err
	}

	return types.DigestResult{Path: filePath, Digest: d.Sum(nil), BytesRead: n}, nil
}
