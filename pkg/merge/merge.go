// Package merge overlays directory trees onto a destination directory.
//
// Sources are applied in order. Files that already exist in the destination
// are overwritten, so when two sources carry the same relative path the
// later one wins. Directories are unioned and never replaced.
package merge

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/otiai10/copy"
)

func options() copy.Options {
	return copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Skip
		},
		OnDirExists: func(string, string) copy.DirExistsAction {
			return copy.Merge
		},
		// Copies stay owner-writable so later sources and reruns can overwrite them
		PermissionControl: copy.AddPermission(0200),
	}
}

// Directories copies the contents of every source directory into destDir,
// preserving relative paths. destDir is created when missing.
func Directories(destDir string, sources ...string) error {
	logger := logging.GetLogger("merge")

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrMergeFailed, "failed to create %s", destDir)
	}

	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrMergeFailed, "cannot read merge source %s", src).
				WithDetail("source", src)
		}
		if !info.IsDir() {
			return errors.Newf(errors.ErrMergeFailed, "merge source %s is not a directory", src).
				WithDetail("source", src)
		}

		logger.Debug().Str("source", src).Str("dest", destDir).Msg("merging directory")
		if err := copy.Copy(src, destDir, options()); err != nil {
			return errors.Wrapf(err, errors.ErrMergeFailed, "failed to merge %s into %s", src, destDir).
				WithDetail("source", src)
		}
	}

	return nil
}

// File copies src into destDir under its own base name, replacing any
// existing file of that name.
func File(src, destDir string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMergeFailed, "cannot read %s", src).
			WithDetail("source", src)
	}
	if info.IsDir() {
		return errors.Newf(errors.ErrMergeFailed, "%s is a directory", src).
			WithDetail("source", src)
	}

	dest := filepath.Join(destDir, filepath.Base(src))
	if err := copy.Copy(src, dest, options()); err != nil {
		return errors.Wrapf(err, errors.ErrMergeFailed, "failed to copy %s to %s", src, destDir).
			WithDetail("source", src)
	}
	return nil
}
