package parser

import "fmt"

// ErrorKind distinguishes the failure modes described in SPEC_FULL.md §7.
// All of them surface to the caller as the single *InvalidInputError type;
// Kind exists so callers that care can switch on it without string matching.
type ErrorKind int

const (
	// TabIndentation: tabs used for indentation.
	TabIndentation ErrorKind = iota
	// IndentationError: inconsistent indent inside an embedded block.
	IndentationError
	// MalformedInline: unclosed '[' or '{', unterminated quoted scalar, or
	// other unrecognized flow-style structure.
	MalformedInline
	// MergeError: '<<' used against a scalar, or a sequence merge containing
	// a non-mapping element.
	MergeError
	// ReferenceError: an alias names an unknown anchor.
	ReferenceError
	// RegexEngineError: the regexp engine reported an internal limit.
	RegexEngineError
)

func (k ErrorKind) String() string {
	switch k {
	case TabIndentation:
		return "TabIndentation"
	case IndentationError:
		return "IndentationError"
	case MalformedInline:
		return "MalformedInline"
	case MergeError:
		return "MergeError"
	case ReferenceError:
		return "ReferenceError"
	case RegexEngineError:
		return "RegexEngineError"
	default:
		return "UnknownError"
	}
}

// InvalidInputError is the single error class the CORE parser raises. When
// the error is tied to a source line it carries the 1-based line number in
// the ORIGINAL (pre-normalization) source and the offending line's verbatim
// text, per SPEC_FULL.md §7. Errors raised by the Inline Parser and by the
// folded-scalar header check carry Line 0.
type InvalidInputError struct {
	Kind ErrorKind
	Line int // 1-based; 0 when not applicable
	Text string
	msg  string
}

func (e *InvalidInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s (%q)", e.Kind, e.Line, e.msg, e.Text)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func newError(kind ErrorKind, line int, text, format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{
		Kind: kind,
		Line: line,
		Text: text,
		msg:  fmt.Sprintf(format, args...),
	}
}
