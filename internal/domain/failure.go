package domain

import "strconv"

// Failure represents a failed region within a documentation file
type Failure struct {
	Kind     string `json:"kind"`
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
	Source   string `json:"source"`
	Expected string `json:"expected,omitempty"`
	Got      string `json:"got,omitempty"`
	Diff     string `json:"diff,omitempty"`
	Message  string `json:"message,omitempty"`
	Resolved bool   `json:"resolved,omitempty"` // Track if failure is marked as resolved
}

// Location returns the file:line form used throughout the UI.
func (f Failure) Location() string {
	if f.Line == 0 {
		return f.FilePath
	}
	return f.FilePath + ":" + strconv.Itoa(f.Line)
}
