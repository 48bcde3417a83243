// Package commands contains the command implementations for the treehash application.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gingerrexayers/treehash-go/internal/treehash/lib"
	"github.com/gingerrexayers/treehash-go/internal/treehash/logging"
	"github.com/gingerrexayers/treehash-go/internal/treehash/types"
)

// ErrIncomplete is returned when a keep-going run finished but some files
// could not be hashed.
var ErrIncomplete = errors.New("some files could not be hashed")

// HashOptions configures a Hash run.
type HashOptions struct {
	Algorithm  string
	IgnoreFile string
	KeepGoing  bool
	// Out receives result lines; defaults to os.Stdout.
	Out    io.Writer
	Logger *slog.Logger
}

// Hash walks root and writes one "<path>,<hex digest>" line per regular file.
// A root that cannot be listed, or (without KeepGoing) a file that cannot be
// read, ends the run with an error. Lines written before the failure are
// flushed. Subdirectories that cannot be listed are skipped and logged.
func Hash(root string, opts HashOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	hasher, err := lib.NewHasher(opts.Algorithm)
	if err != nil {
		return err
	}

	walkOpts := []lib.WalkerOption{
		lib.WithSkipHandler(func(s types.SkippedDir) {
			logger.Warn("skipping unreadable directory", "path", s.Path, "error", s.Err)
		}),
	}
	if opts.IgnoreFile != "" {
		matcher, err := lib.LoadIgnoreFile(opts.IgnoreFile)
		if err != nil {
			return err
		}
		walkOpts = append(walkOpts, lib.WithExclude(matcher.Excluded))
	}

	walker, err := lib.NewWalker(root, walkOpts...)
	if err != nil {
		return err
	}
	defer walker.Close()

	emitter := lib.NewEmitter(out)
	pipeline := &lib.Pipeline{
		Hasher:    hasher,
		Sink:      emitter,
		KeepGoing: opts.KeepGoing,
		OnResult: func(res types.DigestResult) {
			logger.Debug("hashed file", "path", res.Path, "bytes", res.BytesRead)
		},
	}

	stats, runErr := pipeline.Run(walker)
	if err := emitter.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("flush output: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	logger.Info("hash complete",
		"root", root,
		"algorithm", hasher.Algorithm().Name,
		"files", stats.Files,
		"size", humanize.IBytes(uint64(stats.Bytes)),
		"skipped_dirs", len(walker.Skipped()),
		"failed_files", len(stats.Failed),
	)

	if err := stats.Err(); err != nil {
		for _, f := range stats.Failed {
			logger.Error("could not hash file", "path", f.Path, "error", f.Err)
		}
		return fmt.Errorf("%w (%d failed): %w", ErrIncomplete, len(stats.Failed), err)
	}
	return nil
}
