package lineardoc

import "errors"

// Sentinel errors for the fatal conditions spec.md §7 describes.
// ConfigurationError is deliberately absent: it is non-fatal, silently
// treated as "not a removable template" at the point it occurs
// (mw_contextualizer.go).
var (
	// ErrMalformedInput is returned when the HTML tokenizer reports an
	// error other than end of input. Parsing is not retried with the input
	// wrapped in a root element.
	ErrMalformedInput = errors.New("lineardoc: malformed input")
	// ErrStructuralMismatch is returned when a close tag does not match
	// the top of the block or annotation stack.
	ErrStructuralMismatch = errors.New("lineardoc: structural mismatch")
	// ErrUnexpectedReferenceClose is returned when a reference/math
	// sub-document is closed by something other than span or sup.
	ErrUnexpectedReferenceClose = errors.New("lineardoc: unexpected reference close tag")
)
