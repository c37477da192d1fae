/*

Package gderr defines the flat error-kind taxonomy shared by the v2 and
v3 codecs. It generalizes the teacher's plain sentinel-error style
(ErrNotReplayFile / ErrParsing) into a typed Error that still supports
errors.Is against a handful of package-level sentinels, but additionally
carries an inspectable Kind and a wrapped cause.

*/
package gderr

import "fmt"

// Kind classifies why an operation failed.
type Kind byte

const (
	// KindUnknown is the zero value; never produced by this package.
	KindUnknown Kind = iota

	// KindIO means an underlying io.Reader/io.Writer operation failed.
	KindIO

	// KindHeaderMismatch means a format magic / header did not match.
	KindHeaderMismatch

	// KindFooterMismatch means a format footer did not match.
	KindFooterMismatch

	// KindMetaSizeMismatch means the declared meta size did not match
	// the Meta implementation's Size().
	KindMetaSizeMismatch

	// KindMalformed means the stream was structurally invalid in some way
	// not covered by a more specific Kind below (e.g. an out-of-order
	// frame passed to AddInput, or a Meta implementation rejecting its
	// decoded bytes).
	KindMalformed

	// KindUnknownAtomID means a v3 atom's id field was none of
	// Null/Action/Marker.
	KindUnknownAtomID

	// KindInvalidSectionIdentifier means a v3 section header's 2-bit tag
	// was not one of Input/Repeat/Special.
	KindInvalidSectionIdentifier

	// KindInvalidSpecialType means a v3 Special section's type field was
	// not one of Restart/RestartFull/Death/TPS.
	KindInvalidSpecialType

	// KindInvalidButton means a v3 player-input's button field held a
	// value outside Swift/Jump/Left/Right. Reserved: the button field is
	// a dense 2-bit tag and every value currently decodes to a button, so
	// no call site produces this today.
	KindInvalidButton

	// KindUnsupported means the caller asked for something the format
	// cannot represent (e.g. a Skip action passed to the v3 planner).
	KindUnsupported

	// KindParsing means an unexpected internal error occurred while
	// decoding untrusted input; parseProtected-style recovery converts
	// a panic to this Kind.
	KindParsing
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindHeaderMismatch:
		return "header mismatch"
	case KindFooterMismatch:
		return "footer mismatch"
	case KindMetaSizeMismatch:
		return "meta size mismatch"
	case KindMalformed:
		return "malformed stream"
	case KindUnknownAtomID:
		return "unknown atom id"
	case KindInvalidSectionIdentifier:
		return "invalid section identifier"
	case KindInvalidSpecialType:
		return "invalid special type"
	case KindInvalidButton:
		return "invalid button"
	case KindUnsupported:
		return "unsupported"
	case KindParsing:
		return "parsing"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the v2 and v3 packages.
type Error struct {
	Kind  Kind
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

// Unwrap returns the wrapped cause, enabling errors.Is/errors.As to see
// through an Error to its cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a sentinel for the same Kind, enabling
// errors.Is(err, gderr.ErrHeaderMismatch)-style checks.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Cause == nil && t.Kind == e.Kind
}

// New creates an Error of the given Kind with no wrapped cause.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Wrap creates an Error of the given Kind wrapping cause. If cause is
// nil, Wrap returns nil (mirroring the usual Go wrapping idiom).
func Wrap(kind Kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Cause: cause}
}

// Sentinels for errors.Is comparisons against a Kind, independent of any
// wrapped cause.
var (
	ErrHeaderMismatch           = New(KindHeaderMismatch)
	ErrFooterMismatch           = New(KindFooterMismatch)
	ErrMetaSizeMismatch         = New(KindMetaSizeMismatch)
	ErrMalformed                = New(KindMalformed)
	ErrUnknownAtomID            = New(KindUnknownAtomID)
	ErrInvalidSectionIdentifier = New(KindInvalidSectionIdentifier)
	ErrInvalidSpecialType       = New(KindInvalidSpecialType)
	ErrInvalidButton            = New(KindInvalidButton)
	ErrUnsupported              = New(KindUnsupported)
	ErrParsing                  = New(KindParsing)
)
