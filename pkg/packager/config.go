package packager

import (
	"os"

	"github.com/arthur-debert/subpack/pkg/apps"
	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/arthur-debert/subpack/pkg/staging"
)

const (
	// DefaultWorkers bounds concurrent application fetch and extraction.
	DefaultWorkers = 4
	// MaxWorkers is the upper clamp for Config.Workers.
	MaxWorkers = 16
)

// Config holds everything a Packager needs. It is copied by New and never
// modified afterwards.
type Config struct {
	// CacheDir is the working cache. Required.
	CacheDir string
	// Resources serves the base archives. Required.
	Resources staging.Store
	// BaseArchives are staged and extracted in order. Defaults to
	// source.zip then substratum.zip.
	BaseArchives []string
	// AssetDirs are merged over the working tree by DoWork. Entries that
	// are not existing directories are dropped.
	AssetDirs []string
	// Applications whose assets DoWork extracts. Nil entries are skipped.
	Applications []*apps.ApplicationInfo
	// Fetcher and Extractor are required when Applications is not empty.
	Fetcher   apps.Fetcher
	Extractor apps.Extractor
	// Workers bounds per-application concurrency (1..MaxWorkers).
	Workers int
	// OutputName is the output archive file name inside CacheDir.
	OutputName string
	// CleanCache empties CacheDir before the run.
	CleanCache bool
}

func (c Config) withDefaults() Config {
	if len(c.BaseArchives) == 0 {
		c.BaseArchives = paths.BaseArchives()
	} else {
		c.BaseArchives = append([]string(nil), c.BaseArchives...)
	}
	if c.OutputName == "" {
		c.OutputName = paths.DefaultOutputName
	}

	switch {
	case c.Workers == 0:
		c.Workers = DefaultWorkers
	case c.Workers < 1:
		c.Workers = 1
	case c.Workers > MaxWorkers:
		c.Workers = MaxWorkers
	}

	c.Applications = append([]*apps.ApplicationInfo(nil), c.Applications...)
	c.AssetDirs = existingDirs(c.AssetDirs)
	return c
}

func (c Config) validate() error {
	if c.CacheDir == "" {
		return errors.New(errors.ErrInvalidInput, "cache directory is required")
	}
	if c.Resources == nil {
		return errors.New(errors.ErrInvalidInput, "resource store is required")
	}
	for _, name := range append([]string{c.OutputName}, c.BaseArchives...) {
		if err := paths.ValidateResourceName(name); err != nil {
			return err
		}
	}
	if hasApplications(c.Applications) {
		if c.Fetcher == nil {
			return errors.New(errors.ErrInvalidInput, "a fetcher is required to process applications")
		}
		if c.Extractor == nil {
			return errors.New(errors.ErrInvalidInput, "an extractor is required to process applications")
		}
	}
	return nil
}

func hasApplications(list []*apps.ApplicationInfo) bool {
	for _, info := range list {
		if info != nil {
			return true
		}
	}
	return false
}

func existingDirs(dirs []string) []string {
	logger := logging.GetLogger("packager")

	kept := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			logger.Warn().Str("dir", dir).Msg("ignoring asset directory that does not exist")
			continue
		}
		kept = append(kept, dir)
	}
	return kept
}
