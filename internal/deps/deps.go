package deps

import "fmt"

// Source records where a binary was found.
type Source string

const (
	SourceNone       Source = ""
	SourceConfigured Source = "configured"
	SourceBundled    Source = "bundled"
	SourcePath       Source = "PATH"
)

// Status reports the availability of an external binary.
type Status struct {
	Name        string
	Command     string
	Description string
	Source      Source
	Available   bool
	Detail      string
}

// Summary is a one-line description suitable for status output.
func (s Status) Summary() string {
	if !s.Available {
		if s.Detail != "" {
			return s.Detail
		}
		return "not found"
	}
	if s.Source == SourceNone {
		return s.Command
	}
	return fmt.Sprintf("%s (%s)", s.Command, s.Source)
}
