package commands

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/gingerrexayers/treehash-go/internal/treehash/lib"
	"github.com/gingerrexayers/treehash-go/internal/treehash/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const emptyHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

var lineRE = regexp.MustCompile(`^(.+),([0-9a-f]{64})$`)

// helper function to create a temporary directory tree
func createTestTree(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(tmpDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755), "Failed to create parent dir")
		require.NoError(t, os.WriteFile(full, []byte(content), 0644), "Failed to write test file")
	}
	return tmpDir
}

// parseOutput maps each output path to its digest, failing on malformed or duplicate lines.
func parseOutput(t *testing.T, out string) ([]string, map[string]string) {
	t.Helper()
	var order []string
	digests := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		m := lineRE.FindStringSubmatch(line)
		require.NotNil(t, m, "malformed line %q", line)
		_, dup := digests[m[1]]
		require.False(t, dup, "duplicate line for %s", m[1])
		digests[m[1]] = m[2]
		order = append(order, m[1])
	}
	return order, digests
}

func TestHash(t *testing.T) {
	t.Run("one line per regular file", func(t *testing.T) {
		root := createTestTree(t, map[string]string{
			"a.txt":         "alpha",
			"copy.txt":      "alpha",
			"empty":         "",
			"sub/b.txt":     "beta",
			"sub/deep/c.md": "gamma",
		})

		var out bytes.Buffer
		require.NoError(t, Hash(root, HashOptions{Out: &out}))

		order, digests := parseOutput(t, out.String())
		assert.Len(t, order, 5)
		assert.Equal(t, emptyHash, digests[filepath.Join(root, "empty")])
		assert.Equal(t, digests[filepath.Join(root, "a.txt")], digests[filepath.Join(root, "copy.txt")])
		assert.NotEqual(t, digests[filepath.Join(root, "a.txt")], digests[filepath.Join(root, "sub", "b.txt")])
	})

	t.Run("root files come before subdirectory files", func(t *testing.T) {
		root := createTestTree(t, map[string]string{"a.txt": "a", "sub/b.txt": "b"})

		var out bytes.Buffer
		require.NoError(t, Hash(root, HashOptions{Out: &out}))

		order, _ := parseOutput(t, out.String())
		assert.Equal(t, []string{filepath.Join(root, "a.txt"), filepath.Join(root, "sub", "b.txt")}, order)
	})

	t.Run("two runs give identical output", func(t *testing.T) {
		root := createTestTree(t, map[string]string{"a": "1", "b/c": "2", "b/d/e": "3", "f/g": "4"})

		var first, second bytes.Buffer
		require.NoError(t, Hash(root, HashOptions{Out: &first}))
		require.NoError(t, Hash(root, HashOptions{Out: &second}))

		assert.Equal(t, first.String(), second.String())
	})

	t.Run("empty tree produces no output", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, Hash(t.TempDir(), HashOptions{Out: &out}))
		assert.Zero(t, out.Len())
	})

	t.Run("missing root fails and prints nothing", func(t *testing.T) {
		var out bytes.Buffer
		err := Hash(filepath.Join(t.TempDir(), "nope"), HashOptions{Out: &out})

		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Zero(t, out.Len())
	})

	t.Run("root that is a file fails", func(t *testing.T) {
		root := createTestTree(t, map[string]string{"f": "x"})
		err := Hash(filepath.Join(root, "f"), HashOptions{Out: &bytes.Buffer{}})
		assert.ErrorIs(t, err, lib.ErrNotDirectory)
	})

	t.Run("alternate algorithm", func(t *testing.T) {
		root := createTestTree(t, map[string]string{"empty": ""})

		var out bytes.Buffer
		require.NoError(t, Hash(root, HashOptions{Out: &out, Algorithm: "blake3"}))

		_, digests := parseOutput(t, out.String())
		assert.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", digests[filepath.Join(root, "empty")])
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		err := Hash(t.TempDir(), HashOptions{Out: &bytes.Buffer{}, Algorithm: "crc32"})
		assert.Error(t, err)
	})

	t.Run("ignore file", func(t *testing.T) {
		root := createTestTree(t, map[string]string{
			"keep.txt":      "k",
			"skip.log":      "s",
			"vendor/lib.go": "v",
		})
		ignore := filepath.Join(t.TempDir(), "ignore")
		require.NoError(t, os.WriteFile(ignore, []byte("*.log\nvendor/\n"), 0644))

		var out bytes.Buffer
		require.NoError(t, Hash(root, HashOptions{Out: &out, IgnoreFile: ignore}))

		order, _ := parseOutput(t, out.String())
		assert.Equal(t, []string{filepath.Join(root, "keep.txt")}, order)
	})

	t.Run("summary reports size in binary units", func(t *testing.T) {
		root := createTestTree(t, map[string]string{"a.bin": strings.Repeat("x", 2048)})

		var logs bytes.Buffer
		logger, err := logging.New(&logs, logging.Options{Level: "info", Format: "json"})
		require.NoError(t, err)

		require.NoError(t, Hash(root, HashOptions{Out: &bytes.Buffer{}, Logger: logger}))
		assert.Contains(t, logs.String(), `"size":"2.0 KiB"`)
	})

	t.Run("missing ignore file", func(t *testing.T) {
		err := Hash(t.TempDir(), HashOptions{Out: &bytes.Buffer{}, IgnoreFile: filepath.Join(t.TempDir(), "none")})
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestHashPermissions(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	t.Run("unreadable subdirectory is skipped and logged", func(t *testing.T) {
		root := createTestTree(t, map[string]string{"ok.txt": "ok", "locked/secret.txt": "s"})
		locked := filepath.Join(root, "locked")
		require.NoError(t, os.Chmod(locked, 0))
		t.Cleanup(func() { os.Chmod(locked, 0755) })

		var out, logs bytes.Buffer
		logger, err := logging.New(&logs, logging.Options{Level: "warn", Format: "json"})
		require.NoError(t, err)

		require.NoError(t, Hash(root, HashOptions{Out: &out, Logger: logger}))

		order, _ := parseOutput(t, out.String())
		assert.Equal(t, []string{filepath.Join(root, "ok.txt")}, order)
		assert.Contains(t, logs.String(), "skipping unreadable directory")
		assert.Contains(t, logs.String(), locked)
	})

	t.Run("unreadable file aborts the run", func(t *testing.T) {
		root := createTestTree(t, map[string]string{"bad.txt": "b"})
		bad := filepath.Join(root, "bad.txt")
		require.NoError(t, os.Chmod(bad, 0))

		err := Hash(root, HashOptions{Out: &bytes.Buffer{}})

		require.Error(t, err)
		assert.ErrorIs(t, err, fs.ErrPermission)
		assert.False(t, errors.Is(err, ErrIncomplete))
	})

	t.Run("keep-going hashes the rest and reports incomplete", func(t *testing.T) {
		root := createTestTree(t, map[string]string{"bad.txt": "b", "good.txt": "g", "sub/more.txt": "m"})
		require.NoError(t, os.Chmod(filepath.Join(root, "bad.txt"), 0))

		var out bytes.Buffer
		err := Hash(root, HashOptions{Out: &out, KeepGoing: true})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIncomplete)
		assert.ErrorIs(t, err, fs.ErrPermission)
		order, _ := parseOutput(t, out.String())
		assert.ElementsMatch(t, []string{filepath.Join(root, "good.txt"), filepath.Join(root, "sub", "more.txt")}, order)
	})
}

func TestChunks(t *testing.T) {
	root := createTestTree(t, map[string]string{"f.bin": strings.Repeat("chunk me please ", 4096)})

	var out bytes.Buffer
	require.NoError(t, Chunks(filepath.Join(root, "f.bin"), "", &out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[0], "0,"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "# "+filepath.Join(root, "f.bin")+","))

	err := Chunks(filepath.Join(root, "missing"), "", &bytes.Buffer{})
	assert.ErrorIs(t, err, fs.ErrNotExist)

	t.Run("empty file prints only the summary", func(t *testing.T) {
		dir := createTestTree(t, map[string]string{"empty": ""})

		var out bytes.Buffer
		require.NoError(t, Chunks(filepath.Join(dir, "empty"), "", &out))
		assert.Equal(t, "# "+filepath.Join(dir, "empty")+","+emptyHash+" (0 chunks, 0 B)\n", out.String())
	})
}

func TestAlgorithms(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Algorithms(&out))

	text := out.String()
	for _, name := range lib.AlgorithmNames() {
		assert.Contains(t, text, name)
	}
	assert.Contains(t, text, "sha256     256 bits (default)")
}
