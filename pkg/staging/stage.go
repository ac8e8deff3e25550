package staging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/dustin/go-humanize"
)

// Stage copies every named resource from store into destDir. Resources
// whose destination already exists are left untouched. Any failure is
// reported as STAGING_FAILED.
func Stage(store Store, names []string, destDir string) error {
	logger := logging.GetLogger("staging")

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStagingFailed, "failed to create %s", destDir)
	}

	for _, name := range names {
		if err := paths.ValidateResourceName(name); err != nil {
			return errors.Wrapf(err, errors.ErrStagingFailed, "invalid resource name %q", name).
				WithDetail("resource", name)
		}

		dest := filepath.Join(destDir, name)
		if _, err := os.Stat(dest); err == nil {
			logger.Debug().Str("resource", name).Msg("resource already staged")
			continue
		}

		if !store.Exists(name) {
			return errors.Newf(errors.ErrStagingFailed, "bundled resource %s not found", name).
				WithDetail("resource", name)
		}

		n, err := stageOne(store, name, dest)
		if err != nil {
			return errors.Wrapf(err, errors.ErrStagingFailed, "failed to stage %s", name).
				WithDetail("resource", name)
		}

		logger.Info().
			Str("resource", name).
			Str("size", humanize.Bytes(uint64(n))).
			Msg("staged resource")
	}

	return nil
}

func stageOne(store Store, name, dest string) (int64, error) {
	in, err := store.Open(name)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = in.Close()
	}()

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+name+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	n, err := io.Copy(tmp, in)
	if err != nil {
		_ = tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}

	return n, os.Rename(tmpName, dest)
}
