// Package testutil holds filesystem and archive fixtures shared by tests.
package testutil

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateDir creates a directory (and parents) under baseDir and returns it.
func CreateDir(t *testing.T, baseDir, rel string) string {
	t.Helper()

	dir := filepath.Join(baseDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(dir, 0755))
	return dir
}

// CreateFile writes content to baseDir/rel, creating parents, and returns the path.
func CreateFile(t *testing.T, baseDir, rel, content string) string {
	t.Helper()

	path := filepath.Join(baseDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// CreateTree writes every path -> content pair under baseDir.
func CreateTree(t *testing.T, baseDir string, files map[string]string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(baseDir, 0755))
	for rel, content := range files {
		CreateFile(t, baseDir, rel, content)
	}
	return baseDir
}

// CreateZip writes a zip archive at path holding the given entries.
// Entry names use forward slashes; a trailing slash makes a directory entry.
func CreateZip(t *testing.T, path string, files map[string]string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, ZipBytes(t, files), 0644))
	return path
}

// ZipBytes returns an in-memory zip archive holding the given entries.
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if name[len(name)-1] == '/' {
			continue
		}
		_, err = io.WriteString(w, files[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// ZipContents reads every file entry of a zip archive into a map.
func ZipContents(t *testing.T, path string) map[string]string {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() {
		_ = r.Close()
	}()

	out := make(map[string]string, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		require.NoError(t, err)
		out[f.Name] = string(data)
	}
	return out
}

// ReadFile returns the content of baseDir/rel.
func ReadFile(t *testing.T, baseDir, rel string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
