// Package apps describes installed applications and the collaborators the
// packager uses to pull assets out of them.
package apps

import (
	"context"
)

// ApplicationInfo identifies one installed application package.
type ApplicationInfo struct {
	PackageName string `json:"packageName"`
	Label       string `json:"label,omitempty"`
	VersionName string `json:"versionName,omitempty"`
	VersionCode string `json:"versionCode,omitempty"`
	SourcePath  string `json:"sourcePath"`
}

func (a *ApplicationInfo) String() string {
	if a == nil {
		return "<nil>"
	}
	return a.PackageName
}

// Inventory lists installed applications.
type Inventory interface {
	ListInstalled(ctx context.Context) ([]ApplicationInfo, error)
	// FindByIdentifier returns nil without error when no application has
	// the given package name.
	FindByIdentifier(ctx context.Context, id string) (*ApplicationInfo, error)
}

// Fetcher makes an application's package file available under cacheDir and
// returns its path.
type Fetcher interface {
	FetchToCache(ctx context.Context, cacheDir string, info *ApplicationInfo) (string, error)
}

// Extractor copies the assets of a package file into destDir.
type Extractor interface {
	ExtractAssets(ctx context.Context, packageFile, destDir string) error
}
