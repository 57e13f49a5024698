package raml

import (
	"fmt"

	"go.yaml.in/yaml/v4"
)

// DiagnosticCode classifies a loader diagnostic.
type DiagnosticCode int

// Diagnostic codes reported by the loader.
const (
	// CodeMissingHeader: the first line is not a #%RAML header.
	CodeMissingHeader DiagnosticCode = iota + 1
	// CodeUnsupportedVersion: the header names a RAML version other than 1.0.
	CodeUnsupportedVersion
	// CodeMissingTitle: the root has no title.
	CodeMissingTitle
	// CodeUnknownResourceType: a resource references an undeclared resource type.
	CodeUnknownResourceType
	// CodeUnknownTrait: a resource or method references an undeclared trait.
	CodeUnknownTrait
	// CodeInvalidNode: a node has an unexpected YAML kind.
	CodeInvalidNode
	// CodeInvalidStatusCode: a response key is not an HTTP status code.
	CodeInvalidStatusCode
	// CodeUnsupportedFeature: the node is recognized but not processed.
	CodeUnsupportedFeature
	// CodeMissingParameter: a template placeholder has no value.
	CodeMissingParameter

	// CodeInformational marks notes that are never logged as errors.
	CodeInformational DiagnosticCode = 10
)

// Diagnostic is a problem or note reported while loading a document.
type Diagnostic struct {
	Code      DiagnosticCode `json:"code"`
	Message   string         `json:"message"`
	Path      string         `json:"path"`
	Line      int            `json:"line"`
	Column    int            `json:"column"`
	IsWarning bool           `json:"isWarning"`
}

// String returns "path:line:column: message" with the location parts that are known.
func (d Diagnostic) String() string {
	loc := d.Path
	if d.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", d.Path, d.Line, d.Column)
	}
	kind := "error"
	switch {
	case d.IsWarning:
		kind = "warning"
	case d.Advisory():
		kind = "info"
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, kind, d.Message)
}

// Advisory reports whether the diagnostic is a warning or an informational
// note, neither of which is worth surfacing as an error.
func (d Diagnostic) Advisory() bool {
	return d.IsWarning || d.Code == CodeInformational
}

// reporter collects the diagnostics of one load.
type reporter struct {
	path  string
	diags []Diagnostic
}

func (r *reporter) add(d Diagnostic) {
	if d.Path == "" {
		d.Path = r.path
	}
	r.diags = append(r.diags, d)
}

func (r *reporter) at(code DiagnosticCode, n *yaml.Node, warning bool, format string, args ...any) {
	d := Diagnostic{Code: code, Message: fmt.Sprintf(format, args...), IsWarning: warning}
	if n != nil {
		d.Line, d.Column = n.Line, n.Column
	}
	r.add(d)
}

func (r *reporter) errorf(code DiagnosticCode, n *yaml.Node, format string, args ...any) {
	r.at(code, n, false, format, args...)
}

func (r *reporter) warnf(code DiagnosticCode, n *yaml.Node, format string, args ...any) {
	r.at(code, n, true, format, args...)
}

func (r *reporter) infof(n *yaml.Node, format string, args ...any) {
	r.at(CodeInformational, n, false, format, args...)
}
