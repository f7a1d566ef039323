// Package diag collects localisable, non-fatal diagnostics produced while
// extracting and combining frame parts.
//
// Diagnostics are values, never errors: a pipeline stage that meets a
// recoverable problem records a Warning on the Collector threaded through
// the call and carries on with whatever geometry it has.
package diag

import (
	"fmt"
	"maps"
)

// Severity ranks a Warning.
type Severity int

const (
	Info Severity = iota
	Warn
	Error
)

var severityNames = [...]string{Info: "info", Warn: "warning", Error: "error"}

func (s Severity) String() string {
	if s < Info || s > Error {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	if s < Info || s > Error {
		return nil, fmt.Errorf("diag: invalid severity %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	for i, name := range severityNames {
		if string(text) == name {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("diag: unknown severity %q", text)
}

// Warning is a user-facing diagnostic identified by a message term.
type Warning struct {
	Term     string            `json:"term"`
	Severity Severity          `json:"severity"`
	Data     map[string]string `json:"data,omitempty"`
}

// Collector accumulates warnings for a single call. It is not safe for
// concurrent use; concurrent calls each own a Collector. The zero value is
// ready to use and a nil *Collector discards everything.
type Collector struct {
	warnings []Warning
}

// Add records a warning. data is copied.
func (c *Collector) Add(sev Severity, term string, data map[string]string) {
	if c == nil {
		return
	}
	w := Warning{Term: term, Severity: sev}
	if len(data) > 0 {
		w.Data = maps.Clone(data)
	}
	c.warnings = append(c.warnings, w)
}

// Merge appends all warnings of other.
func (c *Collector) Merge(other []Warning) {
	if c == nil {
		return
	}
	c.warnings = append(c.warnings, other...)
}

// Warnings returns the recorded warnings in insertion order.
func (c *Collector) Warnings() []Warning {
	if c == nil || len(c.warnings) == 0 {
		return nil
	}
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Len returns the number of recorded warnings.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	return len(c.warnings)
}

// HasErrors reports whether any warning has Error severity.
func (c *Collector) HasErrors() bool {
	if c == nil {
		return false
	}
	for _, w := range c.warnings {
		if w.Severity == Error {
			return true
		}
	}
	return false
}
