package lib

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gingerrexayers/treehash-go/internal/treehash/types"
)

// EntrySource is a pull-based sequence of entries. *Walker implements it.
type EntrySource interface {
	Next() bool
	Entry() types.Entry
}

// ResultSink receives digests in the order they are produced. *Emitter implements it.
type ResultSink interface {
	Emit(types.DigestResult) error
}

// FileError is a regular file that could not be hashed.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	// Open and read failures already name the file; print it once.
	var pe *fs.PathError
	if errors.As(e.Err, &pe) && pe.Path == e.Path {
		return fmt.Sprintf("hash %s: %s: %v", e.Path, pe.Op, pe.Err)
	}
	return fmt.Sprintf("hash %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Stats summarizes a pipeline run.
type Stats struct {
	Files  int
	Bytes  int64
	Failed []*FileError
}

// Pipeline hashes every regular file an EntrySource yields and hands each
// result to a ResultSink as soon as it is computed. Nothing is buffered or
// reordered; output order is the source order.
type Pipeline struct {
	Hasher *Hasher
	Sink   ResultSink
	// KeepGoing records file failures in Stats and continues instead of
	// aborting on the first one.
	KeepGoing bool
	// OnResult, if set, observes each result after it reached the sink.
	OnResult func(types.DigestResult)
}

// Run drains src. Without KeepGoing the first file that cannot be opened or
// read stops the run and is returned as a *FileError. Sink errors always stop
// the run.
func (p *Pipeline) Run(src EntrySource) (Stats, error) {
	var stats Stats
	for src.Next() {
		entry := src.Entry()
		if !entry.IsRegularFile() {
			continue
		}

		res, err := p.Hasher.HashFile(entry.Path)
		if err != nil {
			ferr := &FileError{Path: entry.Path, Err: err}
			if !p.KeepGoing {
				return stats, ferr
			}
			stats.Failed = append(stats.Failed, ferr)
			continue
		}

		if err := p.Sink.Emit(res); err != nil {
			return stats, fmt.Errorf("write result for %s: %w", res.Path, err)
		}
		stats.Files++
		stats.Bytes += res.BytesRead
		if p.OnResult != nil {
			p.OnResult(res)
		}
	}
	return stats, nil
}

// Err joins all recorded file failures, or returns nil when there were none.
func (s Stats) Err() error {
	if len(s.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(s.Failed))
	for i, f := range s.Failed {
		errs[i] = f
	}
	return errors.Join(errs...)
}
