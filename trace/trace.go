// Package trace collects the diagnostic entries produced while a method body
// is decompiled and mirrors them to a structured logger.
package trace

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Severity ranks a trace entry.
type Severity uint8

const (
	Error Severity = iota
	Information
	OperationInProgress
	OperationCompleted
	Warning
)

var severityNames = map[Severity]string{
	Error:               "error",
	Information:         "information",
	OperationInProgress: "in-progress",
	OperationCompleted:  "completed",
	Warning:             "warning",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText lets JSON and YAML encoders write severities by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name written by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	for sev, name := range severityNames {
		if name == string(text) {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", text)
}

func (s Severity) level() zerolog.Level {
	switch s {
	case Error:
		return zerolog.ErrorLevel
	case Warning:
		return zerolog.WarnLevel
	case Information:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// Entry is one diagnostic message.
type Entry struct {
	Message  string   `json:"message" yaml:"message"`
	Severity Severity `json:"severity" yaml:"severity"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
}

func (e Entry) String() string {
	if e.Label == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Label, e.Message)
}

// Trace is an append-only list of entries. It is owned by a single
// decompilation and is not safe for concurrent use.
type Trace struct {
	entries []Entry
	logger  zerolog.Logger
}

// New returns an empty trace that mirrors entries to logger.
func New(logger zerolog.Logger) *Trace {
	return &Trace{logger: logger}
}

// Add appends an entry.
func (t *Trace) Add(sev Severity, label, message string) {
	t.entries = append(t.entries, Entry{Message: message, Severity: sev, Label: label})
	evt := t.logger.WithLevel(sev.level())
	if label != "" {
		evt = evt.Str("label", label)
	}
	evt.Msg(message)
}

// Errorf appends an Error entry.
func (t *Trace) Errorf(label, format string, args ...any) {
	t.Add(Error, label, fmt.Sprintf(format, args...))
}

// Warnf appends a Warning entry.
func (t *Trace) Warnf(label, format string, args ...any) {
	t.Add(Warning, label, fmt.Sprintf(format, args...))
}

// Infof appends an Information entry.
func (t *Trace) Infof(label, format string, args ...any) {
	t.Add(Information, label, fmt.Sprintf(format, args...))
}

// Begin appends an OperationInProgress entry.
func (t *Trace) Begin(format string, args ...any) {
	t.Add(OperationInProgress, "", fmt.Sprintf(format, args...))
}

// Complete appends an OperationCompleted entry.
func (t *Trace) Complete(format string, args ...any) {
	t.Add(OperationCompleted, "", fmt.Sprintf(format, args...))
}

// Len returns the number of entries.
func (t *Trace) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries in the order they were added.
func (t *Trace) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Count returns the number of entries with the given severity.
func (t *Trace) Count(sev Severity) int {
	n := 0
	for _, e := range t.entries {
		if e.Severity == sev {
			n++
		}
	}
	return n
}
