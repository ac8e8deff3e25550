package apps

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/beevik/etree"
	"github.com/gabriel-vasile/mimetype"
)

const (
	// PackageIndexName is the Android package index file.
	PackageIndexName = "packages.xml"
	// BaseAPKName is the package file inside an app's code directory.
	BaseAPKName = "base.apk"

	apkExt = ".apk"
)

// LocalInventory reads installed applications from the local filesystem.
//
// Path may point at a package index (packages.xml), at a directory holding
// one, or at a directory of packages laid out either as <id>.apk files or
// as <id>[-suffix]/base.apk code directories.
type LocalInventory struct {
	Path string
}

// NewLocalInventory returns an inventory rooted at path.
func NewLocalInventory(path string) *LocalInventory {
	return &LocalInventory{Path: path}
}

// ListInstalled returns every application found, sorted by package name.
func (inv *LocalInventory) ListInstalled(ctx context.Context) ([]ApplicationInfo, error) {
	info, err := os.Stat(inv.Path)
	if err != nil {
		code := errors.ErrInvalidInput
		if os.IsNotExist(err) {
			code = errors.ErrNotFound
		}
		return nil, errors.Wrapf(err, code, "cannot read application inventory %s", inv.Path)
	}

	var list []ApplicationInfo
	switch {
	case !info.IsDir():
		list, err = readIndex(ctx, inv.Path)
	case fileExists(filepath.Join(inv.Path, PackageIndexName)):
		list, err = readIndex(ctx, filepath.Join(inv.Path, PackageIndexName))
	default:
		list, err = scanDir(ctx, inv.Path)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].PackageName < list[j].PackageName
	})
	return list, nil
}

// FindByIdentifier looks an application up by package name.
func (inv *LocalInventory) FindByIdentifier(ctx context.Context, id string) (*ApplicationInfo, error) {
	list, err := inv.ListInstalled(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].PackageName == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

// readIndex parses the <package> elements of an Android package index.
func readIndex(ctx context.Context, indexPath string) ([]ApplicationInfo, error) {
	logger := logging.GetLogger("apps")

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(indexPath); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to parse package index %s", indexPath)
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "package index %s has no root element", indexPath)
	}

	baseDir := filepath.Dir(indexPath)
	var list []ApplicationInfo
	for _, el := range root.SelectElements("package") {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCancelled, "inventory scan cancelled")
		}

		name := el.SelectAttrValue("name", "")
		codePath := el.SelectAttrValue("codePath", "")
		if name == "" || codePath == "" {
			logger.Warn().Int("index", el.Index()).Msg("skipping package entry without name or codePath")
			continue
		}

		list = append(list, ApplicationInfo{
			PackageName: name,
			Label:       name,
			VersionName: el.SelectAttrValue("versionName", ""),
			VersionCode: el.SelectAttrValue("version", ""),
			SourcePath:  resolveCodePath(baseDir, codePath),
		})
	}

	logger.Debug().Str("index", indexPath).Int("count", len(list)).Msg("read package index")
	return list, nil
}

// resolveCodePath maps a codePath attribute to a package file. Directories
// hold the package as base.apk.
func resolveCodePath(baseDir, codePath string) string {
	if !filepath.IsAbs(codePath) {
		codePath = filepath.Join(baseDir, codePath)
	}
	if strings.HasSuffix(codePath, apkExt) {
		return codePath
	}
	if info, err := os.Stat(codePath); err == nil && !info.IsDir() {
		return codePath
	}
	return filepath.Join(codePath, BaseAPKName)
}

// scanDir lists <id>.apk files and <id>[-suffix]/base.apk directories.
// Files that are not zip containers are logged and skipped.
func scanDir(ctx context.Context, dir string) ([]ApplicationInfo, error) {
	logger := logging.GetLogger("apps")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to read %s", dir)
	}

	var list []ApplicationInfo
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCancelled, "inventory scan cancelled")
		}

		var id, pkgFile string
		switch {
		case entry.IsDir():
			pkgFile = filepath.Join(dir, entry.Name(), BaseAPKName)
			if !fileExists(pkgFile) {
				continue
			}
			// Package names never contain '-', install dirs append "-<n>"
			id, _, _ = strings.Cut(entry.Name(), "-")
		case entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), apkExt):
			pkgFile = filepath.Join(dir, entry.Name())
			id = strings.TrimSuffix(entry.Name(), apkExt)
		default:
			continue
		}

		if !isZip(pkgFile) {
			logger.Warn().Str("file", pkgFile).Msg("skipping file that is not a package archive")
			continue
		}

		list = append(list, ApplicationInfo{
			PackageName: id,
			Label:       id,
			SourcePath:  pkgFile,
		})
	}

	return list, nil
}

func isZip(path string) bool {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
