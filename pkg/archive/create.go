package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/paths"
)

// DefaultTime is stamped on every entry written by Create.
var DefaultTime = time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)

type fileEntry struct {
	name string // forward-slash path relative to the source dir
	path string
	mode fs.FileMode
}

// Create serializes every regular file under sourceDir into a zip archive
// at outputPath and returns outputPath. Entry names are relative to
// sourceDir with forward slashes, sorted lexically. Empty directories
// produce no entries. An existing file at outputPath is replaced; when
// outputPath lies inside sourceDir it is left out of the archive.
func Create(sourceDir, outputPath string) (string, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrArchiveCreate, "failed to read %s", sourceDir)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrArchiveCreate, "%s is not a directory", sourceDir)
	}

	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrArchiveCreate, "invalid output path %s", outputPath)
	}

	entries, err := collect(sourceDir, absOutput)
	if err != nil {
		return "", err
	}

	outDir := filepath.Dir(absOutput)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrArchiveCreate, "failed to create %s", outDir)
	}

	tmp, err := os.CreateTemp(outDir, ".subpack-*.tmp")
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrArchiveCreate, "failed to create temporary archive in %s", outDir)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := write(tmp, entries); err != nil {
		_ = tmp.Close()
		return "", errors.Wrapf(err, errors.ErrArchiveCreate, "failed to write archive %s", outputPath)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrapf(err, errors.ErrArchiveCreate, "failed to write archive %s", outputPath)
	}

	if err := os.Rename(tmpName, absOutput); err != nil {
		return "", errors.Wrapf(err, errors.ErrArchiveCreate, "failed to move archive to %s", outputPath)
	}

	return outputPath, nil
}

func collect(sourceDir, absOutput string) ([]fileEntry, error) {
	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveCreate, "invalid source dir %s", sourceDir)
	}
	skipOutput := paths.ContainsPath(absSource, absOutput)

	var entries []fileEntry
	err = filepath.WalkDir(absSource, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if skipOutput && path == absOutput {
			return nil
		}

		rel, err := filepath.Rel(absSource, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		entries = append(entries, fileEntry{
			name: filepath.ToSlash(rel),
			path: path,
			mode: info.Mode().Perm(),
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveCreate, "failed to walk %s", sourceDir)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].name < entries[j].name
	})
	return entries, nil
}

func write(w io.Writer, entries []fileEntry) error {
	zw := zip.NewWriter(w)

	for _, e := range entries {
		header := &zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: DefaultTime,
		}
		header.SetMode(e.mode)

		dst, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		if err := copyFile(dst, e.path); err != nil {
			return err
		}
	}

	return zw.Close()
}

func copyFile(dst io.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()

	_, err = io.Copy(dst, src)
	return err
}
