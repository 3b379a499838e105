// Package diagnostic implements structured, location-tagged errors with
// optional notes and help lines attached, so lex/parse/type/execute
// failures can carry enough context for a caller to render a pointer
// into the source text.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/Olusamimaths/GQL/token"
)

// Severity classifies a Diagnostic. The engine currently only emits Error
// diagnostics, but the type leaves room for Warning without an API change.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one structured failure, propagated boxed (as *Diagnostic)
// so the success path of every parser function stays small.
type Diagnostic struct {
	Severity Severity
	Message  string
	Location token.Location
	Notes    []string
	Helps    []string
}

// New starts an Error diagnostic with no location; chain WithLocation,
// AddNote, AddHelp.
func New(message string) *Diagnostic {
	return &Diagnostic{Severity: Error, Message: message}
}

func Newf(format string, args ...any) *Diagnostic {
	return New(fmt.Sprintf(format, args...))
}

func (d *Diagnostic) WithLocation(loc token.Location) *Diagnostic {
	d.Location = loc
	return d
}

func (d *Diagnostic) AddNote(note string) *Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

func (d *Diagnostic) AddHelp(help string) *Diagnostic {
	d.Helps = append(d.Helps, help)
	return d
}

// Error satisfies the error interface so a *Diagnostic composes with
// ordinary Go error handling; callers that need the source span type-assert
// back to *Diagnostic.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", d.Severity, d.Message)
	for _, n := range d.Notes {
		fmt.Fprintf(&b, "\n  note: %s", n)
	}
	for _, h := range d.Helps {
		fmt.Fprintf(&b, "\n  help: %s", h)
	}
	return b.String()
}
