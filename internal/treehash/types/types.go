package types

import (
	"io/fs"
	"os"
)

// Entry is one item found while listing a directory. It keeps the path the
// walker built for it together with the OS classification of the item.
type Entry struct {
	Path string
	// Rel is the slash-separated path relative to the walk root.
	Rel string
	d   fs.DirEntry
}

// NewEntry wraps a directory listing result.
func NewEntry(path, rel string, d fs.DirEntry) Entry {
	return Entry{Path: path, Rel: rel, d: d}
}

// Name returns the base name of the entry.
func (e Entry) Name() string {
	if e.d == nil {
		return ""
	}
	return e.d.Name()
}

// Type returns the type bits reported by the directory listing. Symbolic
// links are reported as links, never as their targets.
func (e Entry) Type() fs.FileMode {
	if e.d == nil {
		return fs.ModeIrregular
	}
	return e.d.Type()
}

// IsDir reports whether the listing classified the entry as a directory.
func (e Entry) IsDir() bool {
	return e.Type().IsDir()
}

// IsRegularFile reports whether the entry currently refers to a regular file.
// Links are resolved with a stat, so a link to a regular file counts. The
// answer is only a hint: the file can change before it is opened.
func (e Entry) IsRegularFile() bool {
	t := e.Type()
	if t.IsRegular() {
		return true
	}
	if t&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(e.Path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ChunkRef describes one content-defined chunk of a file.
type ChunkRef struct {
	Offset int64  `json:"offset"`
	Size   int64  `json:"size"`
	Digest []byte `json:"digest"`
}

// DigestResult is the fingerprint of a single file.
type DigestResult struct {
	Path      string     `json:"path"`
	Digest    []byte     `json:"digest"`
	BytesRead int64      `json:"bytesRead"`
	Chunks    []ChunkRef `json:"chunks,omitempty"`
}

// SkippedDir records a subdirectory whose subtree was left out of a walk.
type SkippedDir struct {
	Path string
	Err  error
}

func (s SkippedDir) Error() string {
	return "skipped " + s.Path + ": " + s.Err.Error()
}

func (s SkippedDir) Unwrap() error {
	return s.Err
}
