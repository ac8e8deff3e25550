package assets

import (
	"strings"

	"github.com/arthur-debert/subpack/pkg/errors"
)

// Category identifies a kind of asset bundle.
type Category int

const (
	Overlays Category = iota
	Audio
	Fonts
	BootAnimations
)

var categoryNames = map[Category]string{
	Overlays:       "overlays",
	Audio:          "audio",
	Fonts:          "fonts",
	BootAnimations: "bootanimations",
}

var categoryDirs = map[Category]string{
	Overlays:       "overlays",
	Audio:          "audio",
	Fonts:          "fonts",
	BootAnimations: "bootanimation",
}

var categoryAliases = map[string]Category{
	"overlays":        Overlays,
	"overlay":         Overlays,
	"audio":           Audio,
	"fonts":           Fonts,
	"font":            Fonts,
	"bootanimation":   BootAnimations,
	"bootanimations":  BootAnimations,
	"boot-animation":  BootAnimations,
	"boot-animations": BootAnimations,
}

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{Overlays, Audio, Fonts, BootAnimations}
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// DefaultDir is the subdirectory of the assets root the category lands in
// when no explicit destination is given.
func (c Category) DefaultDir() string {
	return categoryDirs[c]
}

// ParseCategory maps a category name or alias (case-insensitive) to a
// Category.
func ParseCategory(s string) (Category, error) {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, errors.Newf(errors.ErrInvalidInput, "unknown asset category %q", s).
		WithDetail("category", s)
}
