package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/subpack/pkg/errors"
)

// Default directories and files
// These constants define the working cache structure and are NOT
// user-configurable. User-configurable paths belong in pkg/config.
const (
	// AppDirName is the directory name for subpack-specific files
	AppDirName = "subpack"

	// ResourcesDirName is the data subdirectory holding bundled resources
	ResourcesDirName = "resources"

	// ResultDirName is the working tree inside the cache
	ResultDirName = "result"

	// AssetsDirName is the assets root inside the working tree
	AssetsDirName = "assets"

	// AppsDirName is the cache subdirectory for fetched application packages
	AppsDirName = "apps"

	// SourceArchive is the first base archive
	SourceArchive = "source.zip"

	// SubstratumArchive is the second base archive
	SubstratumArchive = "substratum.zip"

	// DefaultOutputName is the file name of the produced archive
	DefaultOutputName = "dummy.apk"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"
)

// BaseArchives returns the base archives in extraction order.
func BaseArchives() []string {
	return []string{SourceArchive, SubstratumArchive}
}

// DefaultCacheDir returns $XDG_CACHE_HOME/subpack.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppDirName)
}

// DefaultResourcesDir returns $XDG_DATA_HOME/subpack/resources.
func DefaultResourcesDir() string {
	return filepath.Join(xdg.DataHome, AppDirName, ResourcesDirName)
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/subpack/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// Layout describes the working cache of one packaging session.
//
// A Layout is not isolated per run: two pipelines sharing the same root
// will corrupt each other's working tree. Callers must serialize runs.
type Layout struct {
	root string
}

// NewLayout returns the layout rooted at cacheDir. The directory is not
// created until Ensure is called.
func NewLayout(cacheDir string) (Layout, error) {
	if err := ValidatePath(cacheDir); err != nil {
		return Layout{}, err
	}

	abs, err := filepath.Abs(ExpandHome(cacheDir))
	if err != nil {
		return Layout{}, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to get absolute path for cache dir %s", cacheDir)
	}
	return Layout{root: abs}, nil
}

// Root returns the cache directory.
func (l Layout) Root() string { return l.root }

// ResultDir returns the working tree root.
func (l Layout) ResultDir() string { return filepath.Join(l.root, ResultDirName) }

// AssetsDir returns the assets root inside the working tree.
func (l Layout) AssetsDir() string { return filepath.Join(l.ResultDir(), AssetsDirName) }

// AppsDir returns the directory fetched application packages are copied to.
func (l Layout) AppsDir() string { return filepath.Join(l.root, AppsDirName) }

// StagedPath returns where a staged resource lives.
func (l Layout) StagedPath(name string) string { return filepath.Join(l.root, name) }

// OutputPath returns where the output archive is written.
func (l Layout) OutputPath(name string) string {
	if name == "" {
		name = DefaultOutputName
	}
	return filepath.Join(l.root, name)
}

// Ensure creates the cache directory if it does not exist.
func (l Layout) Ensure() error {
	if err := os.MkdirAll(l.root, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStagingFailed,
			"failed to create cache directory %s", l.root)
	}
	return nil
}

// Clean removes everything inside the cache directory but keeps the
// directory itself. A missing directory is not an error.
func (l Layout) Clean() error {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrPipelineFault,
			"failed to read cache directory %s", l.root)
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(l.root, entry.Name())); err != nil {
			return errors.Wrapf(err, errors.ErrPipelineFault,
				"failed to remove %s from cache", entry.Name())
		}
	}
	return nil
}

// ExpandHome expands ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
