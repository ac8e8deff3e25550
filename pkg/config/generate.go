package config

import (
	"strings"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Generate renders cfg as a TOML document that Load accepts back.
func Generate(cfg *Config) (string, error) {
	doc := map[string]interface{}{
		"cache": map[string]interface{}{
			"dir":   cfg.Cache.Dir,
			"clean": cfg.Cache.Clean,
		},
		"resources": map[string]interface{}{
			"dir":      cfg.Resources.Dir,
			"archives": nonNil(cfg.Resources.Archives),
		},
		"assets": map[string]interface{}{
			"dirs": nonNil(cfg.Assets.Dirs),
		},
		"apps": map[string]interface{}{
			"dir":      cfg.Apps.Dir,
			"packages": nonNil(cfg.Apps.Packages),
			"all":      cfg.Apps.All,
			"workers":  cfg.Apps.Workers,
			"timeout":  cfg.Apps.Timeout.String(),
		},
		"output": map[string]interface{}{
			"name": cfg.Output.Name,
		},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}

// GenerateTemplate returns the default configuration with every value
// commented out, suitable as a starting user file.
func GenerateTemplate() string {
	return commentOutConfigValues(DefaultsContent())
}

// commentOutConfigValues takes the TOML content and comments out all non-comment, non-blank lines
// that contain configuration values (assignments)
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
