package models

import "fmt"

// Severity of a Diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Diagnostic is an event about a single placemark, or about the run as a
// whole when RecordID is empty.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	RecordID string   `json:"record_id"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	if d.RecordID == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: placemark %s: %s", d.Severity, d.RecordID, d.Message)
}
