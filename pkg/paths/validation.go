package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/subpack/pkg/errors"
)

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Check path length (common filesystem limit)
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ContainsPath checks if child is contained within parent.
// Both paths are cleaned before comparison. A path contains itself.
func ContainsPath(parent, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// SecureJoin joins a relative path onto root and guarantees the result
// stays inside root. Forward slashes are accepted on every platform.
// An empty rel returns root itself.
func SecureJoin(root, rel string) (string, error) {
	if strings.Contains(rel, "\x00") {
		return "", errors.New(errors.ErrPathEscape, "path contains null bytes").
			WithDetail("path", rel)
	}

	native := filepath.FromSlash(rel)
	if filepath.IsAbs(native) || strings.HasPrefix(rel, "/") || filepath.VolumeName(native) != "" {
		return "", errors.Newf(errors.ErrPathEscape, "path %q must be relative", rel).
			WithDetail("path", rel)
	}

	joined := filepath.Join(root, native)
	if !ContainsPath(root, joined) {
		return "", errors.Newf(errors.ErrPathEscape, "path %q escapes %s", rel, root).
			WithDetail("path", rel).
			WithDetail("root", root)
	}

	return joined, nil
}

// ValidateResourceName ensures a bundled resource name is a plain file name.
func ValidateResourceName(name string) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "resource name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return errors.Newf(errors.ErrInvalidInput,
			"resource name %q cannot contain path separators", name)
	}

	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "resource name cannot be '.' or '..'")
	}

	for _, r := range name {
		if r < 32 {
			return errors.New(errors.ErrInvalidInput,
				"resource name contains control characters")
		}
	}

	return nil
}
