// Package ui renders command results in terminal (styled), text (plain)
// or JSON form.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/subpack/pkg/errors"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders one of the view types (Outcome, AppList,
	// AppDetail, EntryList).
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto picks terminal
// output only when w is a colour-capable terminal.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := w.(*os.File); ok {
			return NewRenderer(DetectFormat(file), w)
		}
		return NewRenderer(FormatText, w)
	case FormatTerminal:
		return &printer{w: w, styled: true}, nil
	case FormatText:
		return &printer{w: w}, nil
	case FormatJSON:
		return newJSONRenderer(w), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
