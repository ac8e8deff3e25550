package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f85149"}
	warningColor = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#8b949e"}
	pathColor    = lipgloss.AdaptiveColor{Light: "#0550ae", Dark: "#79c0ff"}
)

var (
	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	pathStyle    = lipgloss.NewStyle().Foreground(pathColor).Italic(true)
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(10)
	listStyle    = lipgloss.NewStyle().PaddingLeft(2)
)
