package apps

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/subpack/pkg/archive"
	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/otiai10/copy"
)

// CopyFetcher fetches an application by copying its package file from
// SourcePath into the cache as <package>.apk.
type CopyFetcher struct{}

// FetchToCache implements Fetcher.
func (CopyFetcher) FetchToCache(ctx context.Context, cacheDir string, info *ApplicationInfo) (string, error) {
	if info == nil {
		return "", errors.New(errors.ErrAppFetch, "no application given")
	}
	fail := func(err error, format string, args ...interface{}) error {
		return errors.Wrapf(err, errors.ErrAppFetch, format, args...).
			WithDetail("package", info.PackageName)
	}

	if err := ctx.Err(); err != nil {
		return "", fail(err, "fetch of %s cancelled", info.PackageName)
	}

	name := info.PackageName + apkExt
	if err := paths.ValidateResourceName(name); err != nil {
		return "", fail(err, "invalid package name %q", info.PackageName)
	}

	src, err := os.Stat(info.SourcePath)
	if err != nil {
		return "", fail(err, "package file for %s is not readable", info.PackageName)
	}
	if src.IsDir() {
		return "", errors.Newf(errors.ErrAppFetch, "package file for %s is a directory", info.PackageName).
			WithDetail("package", info.PackageName)
	}

	dest := filepath.Join(cacheDir, name)
	if err := copy.Copy(info.SourcePath, dest, copy.Options{Sync: true}); err != nil {
		return "", fail(err, "failed to copy package of %s", info.PackageName)
	}

	return dest, nil
}

// AssetExtractor extracts the assets/ entries of a package archive.
type AssetExtractor struct{}

// ExtractAssets implements Extractor. Entries keep their assets/ prefix,
// so they land under destDir/assets.
func (AssetExtractor) ExtractAssets(ctx context.Context, packageFile, destDir string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrAppExtract, "asset extraction cancelled")
	}

	if err := archive.Extract(packageFile, destDir, archive.WithPrefix(paths.AssetsDirName+"/")); err != nil {
		return errors.Wrapf(err, errors.ErrAppExtract, "failed to extract assets from %s", filepath.Base(packageFile)).
			WithDetail("file", packageFile)
	}
	return nil
}
