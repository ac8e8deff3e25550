package assets

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/paths"
	"gopkg.in/yaml.v3"
)

type fileEntry struct {
	Path        string `yaml:"path"`
	Destination string `yaml:"destination,omitempty"`
}

// LoadRequest reads a YAML request file. Top-level keys are categories in
// the order they should be placed; each maps to a list of entries, where an
// entry is either a plain path or a {path, destination} mapping. A single
// scalar is accepted in place of a list. Relative paths resolve against the
// directory holding the request file.
func LoadRequest(path string) (*PackageRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.ErrInvalidInput
		if os.IsNotExist(err) {
			code = errors.ErrNotFound
		}
		return nil, errors.Wrapf(err, code, "failed to read request file %s", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid request file path %s", path)
	}

	req, err := ParseRequest(data, filepath.Dir(abs))
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "invalid request file %s", path)
	}
	return req, nil
}

// ParseRequest parses request YAML. Relative paths resolve against baseDir.
func ParseRequest(data []byte, baseDir string) (*PackageRequest, error) {
	req := NewPackageRequest()

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "malformed YAML")
	}
	if len(doc.Content) == 0 {
		return req, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"line %d: expected a mapping of categories", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		c, err := ParseCategory(key.Value)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "line %d", key.Line)
		}

		files, err := parseEntries(value, baseDir)
		if err != nil {
			return nil, err
		}
		req.Add(c, files...)
	}

	return req, nil
}

func parseEntries(node *yaml.Node, baseDir string) ([]FileInfo, error) {
	var items []*yaml.Node
	switch node.Kind {
	case yaml.SequenceNode:
		items = node.Content
	case yaml.ScalarNode, yaml.MappingNode:
		items = []*yaml.Node{node}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "line %d: unsupported entry", node.Line)
	}

	files := make([]FileInfo, 0, len(items))
	for _, item := range items {
		var entry fileEntry
		switch item.Kind {
		case yaml.ScalarNode:
			entry.Path = item.Value
		case yaml.MappingNode:
			if err := item.Decode(&entry); err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "line %d", item.Line)
			}
		default:
			return nil, errors.Newf(errors.ErrInvalidInput, "line %d: unsupported entry", item.Line)
		}

		if entry.Path == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "line %d: entry has no path", item.Line)
		}

		location := paths.ExpandHome(entry.Path)
		if !filepath.IsAbs(location) {
			location = filepath.Join(baseDir, location)
		}
		files = append(files, FileInfo{
			Location:    filepath.Clean(location),
			Destination: entry.Destination,
		})
	}
	return files, nil
}
