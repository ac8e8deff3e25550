package packager

// Result describes a successful run.
type Result struct {
	OutputPath string
	Size       int64
	Checksum   string
	// Warnings holds isolated failures (asset copies, application fetch
	// or extraction) that did not abort the run.
	Warnings []error
}

// HasWarnings reports whether any isolated failure occurred.
func (r *Result) HasWarnings() bool {
	return r != nil && len(r.Warnings) > 0
}
