package assets

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/paths"
)

// FileInfo is one asset source. Location is a file or directory on disk.
// Destination, when set, is a path relative to the assets root that
// replaces the category's default directory.
type FileInfo struct {
	Location    string
	Destination string
}

// PackageRequest maps categories to asset sources. Categories keep the
// order in which they were first set; setting a category again replaces
// its files without moving it.
type PackageRequest struct {
	order []Category
	files map[Category][]FileInfo
}

// NewPackageRequest returns an empty request.
func NewPackageRequest() *PackageRequest {
	return &PackageRequest{files: make(map[Category][]FileInfo)}
}

// Set replaces the files of a category.
func (r *PackageRequest) Set(c Category, files ...FileInfo) *PackageRequest {
	r.touch(c)
	r.files[c] = append([]FileInfo(nil), files...)
	return r
}

// Add appends files to a category.
func (r *PackageRequest) Add(c Category, files ...FileInfo) *PackageRequest {
	r.touch(c)
	r.files[c] = append(r.files[c], files...)
	return r
}

func (r *PackageRequest) touch(c Category) {
	if r.files == nil {
		r.files = make(map[Category][]FileInfo)
	}
	if _, ok := r.files[c]; !ok {
		r.order = append(r.order, c)
	}
}

// SetOverlaySources replaces the Overlays files.
func (r *PackageRequest) SetOverlaySources(files ...FileInfo) *PackageRequest {
	return r.Set(Overlays, files...)
}

// SetAudioSources replaces the Audio files.
func (r *PackageRequest) SetAudioSources(files ...FileInfo) *PackageRequest {
	return r.Set(Audio, files...)
}

// SetFontSources replaces the Fonts files.
func (r *PackageRequest) SetFontSources(files ...FileInfo) *PackageRequest {
	return r.Set(Fonts, files...)
}

// SetBootAnimationSources replaces the BootAnimations files.
func (r *PackageRequest) SetBootAnimationSources(files ...FileInfo) *PackageRequest {
	return r.Set(BootAnimations, files...)
}

// Categories returns the categories in request order.
func (r *PackageRequest) Categories() []Category {
	return append([]Category(nil), r.order...)
}

// Files returns the files of a category in insertion order.
func (r *PackageRequest) Files(c Category) []FileInfo {
	return append([]FileInfo(nil), r.files[c]...)
}

// Len returns the number of files across all categories.
func (r *PackageRequest) Len() int {
	n := 0
	for _, files := range r.files {
		n += len(files)
	}
	return n
}

// ParseSpec parses a "src[=dest]" flag value. The source is made absolute.
func ParseSpec(spec string) (FileInfo, error) {
	src, dest, _ := strings.Cut(spec, "=")
	src = strings.TrimSpace(src)
	dest = strings.TrimSpace(dest)
	if src == "" {
		return FileInfo{}, errors.Newf(errors.ErrInvalidInput, "invalid asset spec %q: missing source", spec)
	}

	abs, err := filepath.Abs(paths.ExpandHome(src))
	if err != nil {
		return FileInfo{}, errors.Wrapf(err, errors.ErrInvalidInput, "invalid asset source %q", src)
	}

	return FileInfo{Location: abs, Destination: dest}, nil
}
