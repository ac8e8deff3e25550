package topics

import "strings"

// Renderer formats topic content for display. format is the topic file's
// extension, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics as written, normalised to end in exactly one
// newline.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return strings.TrimRight(content, " \t\r\n") + "\n"
}
