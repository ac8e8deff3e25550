package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// printer renders human-readable output. With styled set it uses lipgloss
// styles, otherwise plain text.
type printer struct {
	w      io.Writer
	styled bool
}

func (p *printer) paint(style lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return style.Render(text)
}

func (p *printer) label(name string) string {
	if !p.styled {
		return fmt.Sprintf("%-10s", name)
	}
	return labelStyle.Render(name)
}

func (p *printer) item(text string) string {
	if !p.styled {
		return "  " + text
	}
	return listStyle.Render(text)
}

func (p *printer) marker(symbol string, style lipgloss.Style) string {
	if !p.styled {
		return ""
	}
	return style.Render(symbol) + " "
}

func (p *printer) println(parts ...string) error {
	_, err := fmt.Fprintln(p.w, strings.Join(parts, ""))
	return err
}

func (p *printer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *Outcome:
		return p.renderOutcome(v)
	case *AppList:
		return p.renderAppList(v)
	case *AppDetail:
		return p.renderAppDetail(v)
	case *EntryList:
		return p.renderEntries(v)
	default:
		_, err := fmt.Fprintf(p.w, "%+v\n", result)
		return err
	}
}

func (p *printer) renderOutcome(o *Outcome) error {
	lines := [][]string{
		{p.marker("✓", successStyle), p.paint(successStyle, "Package built"), p.paint(mutedStyle, " ("+o.Mode+")")},
		{"  ", p.label("Output"), p.paint(pathStyle, o.OutputPath)},
		{"  ", p.label("Size"), humanize.Bytes(uint64(o.Size))},
		{"  ", p.label("Checksum"), o.Checksum},
	}
	if len(o.Warnings) > 0 {
		lines = append(lines, []string{"  ", p.label("Warnings"), p.paint(warningStyle, fmt.Sprintf("%d", len(o.Warnings)))})
		for _, w := range o.Warnings {
			lines = append(lines, []string{"    ", p.marker("!", warningStyle), w})
		}
	}

	for _, line := range lines {
		if err := p.println(line...); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) renderAppList(l *AppList) error {
	noun := "applications"
	if len(l.Apps) == 1 {
		noun = "application"
	}
	if err := p.println(fmt.Sprintf("%d %s in ", len(l.Apps), noun), p.paint(pathStyle, l.Source)); err != nil {
		return err
	}

	for _, app := range l.Apps {
		version := app.VersionName
		if app.VersionCode != "" {
			version = strings.TrimSpace(version + " (" + app.VersionCode + ")")
		}
		line := fmt.Sprintf("%-40s %-16s ", app.PackageName, version)
		if err := p.println(p.item(line), p.paint(mutedStyle, app.SourcePath)); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) renderAppDetail(d *AppDetail) error {
	rows := [][2]string{
		{"Package", d.App.PackageName},
		{"Label", d.App.Label},
		{"Version", strings.TrimSpace(d.App.VersionName + " " + d.App.VersionCode)},
		{"Source", p.paint(pathStyle, d.App.SourcePath)},
	}
	for _, row := range rows {
		if err := p.println(p.label(row[0]), row[1]); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) renderEntries(l *EntryList) error {
	if err := p.println(p.paint(pathStyle, l.Archive), fmt.Sprintf(": %d entries", len(l.Entries))); err != nil {
		return err
	}
	for _, name := range l.Entries {
		if err := p.println(p.item(name)); err != nil {
			return err
		}
	}
	return nil
}

func (p *printer) RenderError(err error) error {
	return p.println(p.paint(errorStyle, "Error: "), err.Error())
}

func (p *printer) RenderMessage(msg string) error {
	return p.println(msg)
}
