package importer

import "fmt"

// FormatError reports that no header row was found in the probe window.
// Retrying will not help: the file content does not change.
type FormatError struct {
	Path  string
	Lines int // number of lines probed
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: header %q not found in the first %d lines", e.Path, HeaderMarker, e.Lines)
}

// SchemaError reports a header that was found but lacks a required column.
type SchemaError struct {
	Path   string
	Column string
}

func (e *SchemaError) Error() string {
	if e.Column == ColSaldo {
		return fmt.Sprintf("%s: column %q is required to identify duplicates", e.Path, e.Column)
	}
	return fmt.Sprintf("%s: required column %q missing", e.Path, e.Column)
}
