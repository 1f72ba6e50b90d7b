package layout

import (
	"errors"
	"fmt"
)

// Error kinds. Layout is pure and deterministic, so none of these are
// retryable; all of them abort the pass before any geometry is reported.
var (
	// ErrMalformedTree covers cycles, duplicate children and broken
	// parent links.
	ErrMalformedTree = errors.New("malformed tree")

	// ErrInvalidStyleValue covers negative flex-grow/flex-shrink/gap and
	// negative explicit lengths.
	ErrInvalidStyleValue = errors.New("invalid style value")

	// ErrMissingContainingBlock means a block-participating auto-width box
	// has no resolved ancestor width; in practice the caller forgot to
	// supply a viewport width for the root.
	ErrMissingContainingBlock = errors.New("missing containing block")
)

// Error reports a layout failure together with the offending box id.
type Error struct {
	Kind   error
	BoxID  string
	Detail string
}

func (e *Error) Error() string {
	if e.BoxID == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%v: box %s: %s", e.Kind, e.BoxID, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, boxID, format string, args ...any) *Error {
	return &Error{Kind: kind, BoxID: boxID, Detail: fmt.Sprintf(format, args...)}
}
