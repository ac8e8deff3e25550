package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/gabriel-vasile/mimetype"
)

const zipMIME = "application/zip"

// ExtractOption customizes Extract.
type ExtractOption func(*extractOptions)

type extractOptions struct {
	prefix string
}

// WithPrefix limits extraction to entries whose name starts with prefix.
// Matching entries keep their full name relative to the destination.
func WithPrefix(prefix string) ExtractOption {
	return func(o *extractOptions) {
		o.prefix = prefix
	}
}

// Extract unpacks every entry of archivePath into destDir, creating destDir
// and its parents when missing. Files already present at the same relative
// path are overwritten. Symlink entries are skipped.
func Extract(archivePath, destDir string, opts ...ExtractOption) error {
	o := extractOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if err := checkZip(archivePath); err != nil {
		return err
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveExtract, "failed to open archive %s", archivePath)
	}
	defer func() {
		_ = r.Close()
	}()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveExtract, "failed to create %s", destDir)
	}

	for _, f := range r.File {
		if o.prefix != "" && !strings.HasPrefix(f.Name, o.prefix) {
			continue
		}
		if err := extractEntry(f, destDir); err != nil {
			return errors.Wrapf(err, errors.ErrArchiveExtract,
				"failed to extract %s from %s", f.Name, archivePath).
				WithDetail("entry", f.Name)
		}
	}

	return nil
}

func extractEntry(f *zip.File, destDir string) error {
	target, err := paths.SecureJoin(destDir, f.Name)
	if err != nil {
		return err
	}

	info := f.FileInfo()
	switch {
	case info.IsDir():
		return os.MkdirAll(target, 0755)
	case info.Mode()&os.ModeSymlink != 0:
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	in, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	return writeFile(target, in, perm|0200)
}

func writeFile(filename string, in io.Reader, perm os.FileMode) error {
	out, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// checkZip sniffs the file content and accepts anything in the zip family
// (plain zip, jar, apk, ...).
func checkZip(path string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveExtract, "failed to read archive %s", path)
	}

	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(zipMIME) {
			return nil
		}
	}

	return errors.Newf(errors.ErrArchiveExtract, "%s is not a zip archive", path).
		WithDetail("mime", mtype.String())
}

// Entries lists the entry names of an archive in stored order.
func Entries(archivePath string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveExtract, "failed to open archive %s", archivePath)
	}
	defer func() {
		_ = r.Close()
	}()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names, nil
}
