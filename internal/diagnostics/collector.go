// Package diagnostics collects the warnings and errors reported while recipe
// flags are parsed.
package diagnostics

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Entry is one reported problem with the source position it was reported at.
type Entry struct {
	Severity Severity
	Message  string
	Details  []string
	Source   string
	Line     int
}

func (e Entry) String() string {
	var sb strings.Builder
	if e.Source != "" {
		sb.WriteString(e.Source)
		if e.Line > 0 {
			fmt.Fprintf(&sb, ":%d", e.Line)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(string(e.Severity))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	for _, d := range e.Details {
		sb.WriteString("\n    ")
		sb.WriteString(d)
	}
	return sb.String()
}

// Collector records entries and mirrors them to a logger at debug level. It
// satisfies flags.Reporter.
type Collector struct {
	logger  *slog.Logger
	source  string
	line    int
	entries []Entry
}

// NewCollector creates a collector. logger may be nil.
func NewCollector(logger *slog.Logger) *Collector {
	return &Collector{logger: logger}
}

// At sets the position attached to subsequent entries.
func (c *Collector) At(source string, line int) {
	c.source = source
	c.line = line
}

func (c *Collector) Warning(msg string) {
	c.add(Entry{Severity: SeverityWarning, Message: msg})
}

// Error records an error and returns false.
func (c *Collector) Error(msg string, details ...string) bool {
	c.add(Entry{Severity: SeverityError, Message: msg, Details: slices.Clone(details)})
	return false
}

func (c *Collector) add(e Entry) {
	e.Source = c.source
	e.Line = c.line
	c.entries = append(c.entries, e)

	if c.logger == nil {
		return
	}
	attrs := []any{
		"severity", string(e.Severity),
		"message", e.Message,
		"source", e.Source,
		"line", e.Line,
	}
	if len(e.Details) > 0 {
		attrs = append(attrs, "details", e.Details)
	}
	c.logger.Debug("Flag diagnostic", attrs...)
}

func (c *Collector) Entries() []Entry {
	return slices.Clone(c.entries)
}

func (c *Collector) Errors() []Entry {
	return c.filter(SeverityError)
}

func (c *Collector) Warnings() []Entry {
	return c.filter(SeverityWarning)
}

func (c *Collector) HasErrors() bool {
	return len(c.Errors()) > 0
}

func (c *Collector) filter(s Severity) []Entry {
	var out []Entry
	for _, e := range c.entries {
		if e.Severity == s {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops all entries and the current position.
func (c *Collector) Reset() {
	c.entries = nil
	c.source = ""
	c.line = 0
}
