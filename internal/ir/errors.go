package ir

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes query failures. The string values double as the
// message keys of the localized catalogs in internal/i18n.
type ErrorKind string

const (
	// KindEmpty indicates an empty query or an empty slot list.
	KindEmpty ErrorKind = "empty"

	// KindDisallowedChar indicates a rune outside the query alphabet.
	KindDisallowedChar ErrorKind = "normalizerange"

	// KindBracket indicates an unbalanced or misnested bracket.
	KindBracket ErrorKind = "bracket"

	// KindSyntax indicates bad adjacency, an invalid length range or a
	// construct that is not allowed in its position.
	KindSyntax ErrorKind = "syntax"

	// KindUndefinedCode indicates an unknown property code inside [].
	KindUndefinedCode ErrorKind = "undefined_code"

	// KindLengthDecl indicates a malformed or conflicting |X|=d declaration.
	KindLengthDecl ErrorKind = "length_decl"

	// KindGlobalOperator indicates & | ! at the top level of a slot.
	KindGlobalOperator ErrorKind = "global_operator"

	// KindVoicing indicates a malformed voicing mark on a variable.
	KindVoicing ErrorKind = "voicing"

	// KindTimeout indicates the search deadline expired.
	KindTimeout ErrorKind = "timeout"

	// KindMixedSyntax indicates shared variables outside multi-slot mode.
	KindMixedSyntax ErrorKind = "mixed_syntax"

	// KindUnsupportedLanguage indicates an unknown message catalog.
	KindUnsupportedLanguage ErrorKind = "language"
)

// QueryError is the structured error returned by every stage of the
// query pipeline.
//
// Context carries the offending text (a rune, a bracket body, a slot)
// and may be empty. Err optionally wraps a lower-level cause such as a
// context cancellation.
type QueryError struct {
	Kind    ErrorKind
	Context string
	Err     error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Context)
	}
	return string(e.Kind)
}

// Unwrap returns the wrapped cause, if any.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewError creates a QueryError of the given kind.
func NewError(kind ErrorKind, context string) *QueryError {
	return &QueryError{Kind: kind, Context: context}
}

// WrapError creates a QueryError that wraps cause.
func WrapError(kind ErrorKind, context string, cause error) *QueryError {
	return &QueryError{Kind: kind, Context: context, Err: cause}
}

// KindOf extracts the kind of a QueryError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a QueryError of the given kind.
// Uses errors.As to handle wrapped errors.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsTimeout reports whether err is a search timeout.
func IsTimeout(err error) bool {
	return IsKind(err, KindTimeout)
}

// Kinds lists every ErrorKind.
var Kinds = []ErrorKind{
	KindEmpty,
	KindDisallowedChar,
	KindBracket,
	KindSyntax,
	KindUndefinedCode,
	KindLengthDecl,
	KindGlobalOperator,
	KindVoicing,
	KindTimeout,
	KindMixedSyntax,
	KindUnsupportedLanguage,
}
