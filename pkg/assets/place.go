package assets

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/merge"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/rs/zerolog"
)

// ResolveDestination returns the directory a FileInfo of the given
// category is copied into.
func ResolveDestination(assetsRoot string, c Category, info FileInfo) (string, error) {
	rel := info.Destination
	if rel == "" {
		rel = c.DefaultDir()
	}
	if rel == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "category %d has no default directory", int(c))
	}

	return paths.SecureJoin(assetsRoot, rel)
}

// Place copies every FileInfo of the request into the assets root, in
// request order. A failing entry is logged and reported; the remaining
// entries are still processed. The returned slice is empty when everything
// was placed.
func Place(ctx context.Context, req *PackageRequest, assetsRoot string, logger zerolog.Logger) []error {
	var errs []error

	for _, c := range req.Categories() {
		for _, info := range req.Files(c) {
			if err := ctx.Err(); err != nil {
				return append(errs, errors.Wrap(err, errors.ErrCancelled, "asset placement cancelled"))
			}

			dest, err := placeOne(assetsRoot, c, info)
			if err != nil {
				logger.Warn().Err(err).
					Str("category", c.String()).
					Str("source", info.Location).
					Msg("failed to place asset")
				errs = append(errs, err)
				continue
			}

			logger.Debug().
				Str("category", c.String()).
				Str("source", info.Location).
				Str("dest", dest).
				Msg("placed asset")
		}
	}

	return errs
}

func placeOne(assetsRoot string, c Category, info FileInfo) (string, error) {
	dest, err := ResolveDestination(assetsRoot, c, info)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrPathEscape) {
			return "", err
		}
		return "", errors.Wrapf(err, errors.ErrAssetCopy, "cannot resolve destination for %s", info.Location)
	}

	fail := func(err error, format string, args ...interface{}) error {
		return errors.Wrapf(err, errors.ErrAssetCopy, format, args...).
			WithDetail("category", c.String()).
			WithDetail("source", info.Location)
	}

	src, err := os.Stat(info.Location)
	if err != nil {
		return "", fail(err, "cannot read asset source %s", info.Location)
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		rel, _ := filepath.Rel(assetsRoot, dest)
		return "", fail(err, "failed to create %s", rel)
	}

	if src.IsDir() {
		err = merge.Directories(dest, info.Location)
	} else {
		err = merge.File(info.Location, dest)
	}
	if err != nil {
		return "", fail(err, "failed to copy %s", info.Location)
	}

	return dest, nil
}
