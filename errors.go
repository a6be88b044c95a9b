package failpoint

import (
	"errors"
	"fmt"
)

// Sentinel errors for failpoint. Use errors.Is to check.
var (
	ErrNilCallback = errors.New("failpoint: nil callback")
	ErrEmptyName   = errors.New("failpoint: empty name")
)

// ParseError is returned by Configure and ParseSpec when a spec string is
// malformed. It carries the original spec text and the byte offset (into
// the whitespace-stripped spec) where parsing failed. The registry is left
// untouched whenever a ParseError is returned.
type ParseError struct {
	Spec string
	Pos  int
	Msg  string
	Err  error // wrapped cause, e.g. a strconv error; may be nil
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failpoint: invalid spec %q at position %d: %s", e.Spec, e.Pos, e.Msg)
}

// Unwrap supports errors.Is/errors.As on the wrapped cause, if any.
func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
