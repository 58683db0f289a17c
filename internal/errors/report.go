package errors

import (
	"errors"
	"fmt"

	"github.com/tlcore-lang/tlcore/internal/ast"
)

// Report is the canonical structured diagnostic. Every builder in every
// pass returns one, wrapped as a *ReportError by New or Wrap, so a caller
// can pattern-match on Code without parsing Message.
type Report struct {
	Code    string   // e.g. "TYP008"
	Phase   string   // "parser", "desugar", "resolve", "check", "dispatch", "eval"
	Message string   // human-readable message
	Line    int      // source line, 0 if unknown
	Cause   error    // wrapped underlying error, shown only with --debug
}

// ReportError wraps a Report so it survives errors.As unwrapping.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	if e.Rep.Line > 0 {
		return fmt.Sprintf("[line %d] %s: %s", e.Rep.Line, e.Rep.Code, e.Rep.Message)
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

func (e *ReportError) Unwrap() error {
	if e.Rep == nil {
		return nil
	}
	return e.Rep.Cause
}

// AsReport extracts a *Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// New builds a Report from a node's position, the phase that raised it,
// a code and a message.
func New(phase, code string, pos ast.Pos, format string, args ...interface{}) error {
	return &ReportError{Rep: &Report{
		Code:    code,
		Phase:   phase,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
	}}
}

// Wrap attaches phase/code/line context to an underlying error, keeping it
// reachable via Unwrap for --debug traces.
func Wrap(phase, code string, pos ast.Pos, cause error) error {
	return &ReportError{Rep: &Report{
		Code:    code,
		Phase:   phase,
		Message: cause.Error(),
		Line:    pos.Line,
		Cause:   cause,
	}}
}
