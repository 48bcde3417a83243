package lib

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotDirectory is returned when a walk is started on something that is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// childPath appends name to dir the way the user spelled dir, so a walk of "."
// reports "./a.txt" rather than the cleaned "a.txt".
func childPath(dir, name string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}

// childRel builds the slash-separated path of name relative to the walk root.
func childRel(parentRel, name string) string {
	if parentRel == "" {
		return name
	}
	return parentRel + "/" + name
}

// openDir opens path and verifies it is a directory. The caller owns the
// returned handle.
func openDir(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	return f, nil
}
