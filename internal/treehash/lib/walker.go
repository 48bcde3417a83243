// Package lib contains the core, reusable services for the treehash application.
package lib

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"

	"github.com/gingerrexayers/treehash-go/internal/treehash/types"
)

// readBatch is how many entries are pulled from a directory handle at a time.
const readBatch = 128

// pendingDir is a directory that has been discovered but not listed yet.
type pendingDir struct {
	path string
	rel  string
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithExclude installs a predicate over root-relative, slash-separated paths.
// Excluded entries are not yielded and excluded directories are not descended.
func WithExclude(exclude func(rel string, isDir bool) bool) WalkerOption {
	return func(w *Walker) {
		w.exclude = exclude
	}
}

// WithSkipHandler registers a callback that observes every skipped subtree as
// it happens. Skips are recorded in Skipped either way.
func WithSkipHandler(fn func(types.SkippedDir)) WalkerOption {
	return func(w *Walker) {
		w.onSkip = fn
	}
}

// Walker lazily enumerates every entry beneath a root directory, depth first.
// A directory's own entries are all yielded before any of its subdirectories
// is listed; subdirectories are then drained one after another in the order
// they were listed. Pending directories are kept on an explicit stack, so tree
// depth never turns into call depth.
//
// A Walker is single-pass and not safe for concurrent use.
type Walker struct {
	// current directory being listed
	dir     *os.File
	dirPath string
	dirRel  string
	subdirs []pendingDir

	buf   []types.Entry
	stack []pendingDir

	cur     types.Entry
	skipped []types.SkippedDir

	exclude func(rel string, isDir bool) bool
	onSkip  func(types.SkippedDir)
}

// NewWalker opens root for listing. Failing to open the root is the only fatal
// traversal error; subdirectories that cannot be listed later are skipped.
func NewWalker(root string, opts ...WalkerOption) (*Walker, error) {
	f, err := openDir(root)
	if err != nil {
		return nil, fmt.Errorf("cannot walk %s: %w", root, err)
	}
	w := &Walker{dir: f, dirPath: root}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Next advances to the next entry. It returns false once the tree is
// exhausted or the walker was closed.
func (w *Walker) Next() bool {
	for {
		if len(w.buf) > 0 {
			w.cur = w.buf[0]
			w.buf[0] = types.Entry{}
			w.buf = w.buf[1:]
			return true
		}

		if w.dir != nil {
			w.fill()
			continue
		}

		if len(w.stack) == 0 {
			return false
		}
		next := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		f, err := openDir(next.path)
		if err != nil {
			w.skip(next.path, err)
			continue
		}
		w.dir, w.dirPath, w.dirRel = f, next.path, next.rel
	}
}

// fill reads the next batch from the open directory. When the directory is
// exhausted its subdirectories are pushed so the first listed is popped first.
func (w *Walker) fill() {
	des, err := w.dir.ReadDir(readBatch)
	for _, d := range des {
		rel := childRel(w.dirRel, d.Name())
		isDir := d.IsDir()
		if w.exclude != nil && w.exclude(rel, isDir) {
			continue
		}
		path := childPath(w.dirPath, d.Name())
		w.buf = append(w.buf, types.NewEntry(path, rel, d))
		if isDir {
			w.subdirs = append(w.subdirs, pendingDir{path: path, rel: rel})
		}
	}
	if err == nil {
		return
	}
	if !errors.Is(err, io.EOF) {
		// Whatever was not read yet is lost; keep what we have.
		w.skip(w.dirPath, err)
	}
	w.dir.Close()
	w.dir = nil
	for i := len(w.subdirs) - 1; i >= 0; i-- {
		w.stack = append(w.stack, w.subdirs[i])
	}
	w.subdirs = w.subdirs[:0]
}

func (w *Walker) skip(path string, err error) {
	s := types.SkippedDir{Path: path, Err: err}
	w.skipped = append(w.skipped, s)
	if w.onSkip != nil {
		w.onSkip(s)
	}
}

// Entry returns the entry produced by the last call to Next.
func (w *Walker) Entry() types.Entry {
	return w.cur
}

// Skipped returns every subtree that could not be listed so far.
func (w *Walker) Skipped() []types.SkippedDir {
	return w.skipped
}

// All adapts the walker to a range-over-func sequence. Breaking out of the
// loop leaves the walker where it stopped.
func (w *Walker) All() iter.Seq[types.Entry] {
	return func(yield func(types.Entry) bool) {
		for w.Next() {
			if !yield(w.Entry()) {
				return
			}
		}
	}
}

// Close releases the directory handle held by the walker, if any. Later calls
// to Next return false.
func (w *Walker) Close() error {
	w.buf, w.stack, w.subdirs = nil, nil, nil
	if w.dir == nil {
		return nil
	}
	err := w.dir.Close()
	w.dir = nil
	if err != nil && !errors.Is(err, fs.ErrClosed) {
		return err
	}
	return nil
}
