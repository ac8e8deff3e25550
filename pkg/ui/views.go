package ui

import (
	"github.com/arthur-debert/subpack/pkg/apps"
	"github.com/arthur-debert/subpack/pkg/packager"
)

// Outcome is the view of a finished packaging run.
type Outcome struct {
	Mode       string   `json:"mode"`
	OutputPath string   `json:"outputPath"`
	Size       int64    `json:"size"`
	Checksum   string   `json:"checksum"`
	Warnings   []string `json:"warnings,omitempty"`
}

// NewOutcome builds the view of a packaging result.
func NewOutcome(mode string, res *packager.Result) *Outcome {
	out := &Outcome{
		Mode:       mode,
		OutputPath: res.OutputPath,
		Size:       res.Size,
		Checksum:   res.Checksum,
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}
	return out
}

// AppList is the view of an application inventory.
type AppList struct {
	Source string                 `json:"source"`
	Apps   []apps.ApplicationInfo `json:"apps"`
}

// AppDetail is the view of one application.
type AppDetail struct {
	App apps.ApplicationInfo `json:"app"`
}

// EntryList is the view of an archive's entries.
type EntryList struct {
	Archive string   `json:"archive"`
	Entries []string `json:"entries"`
}
