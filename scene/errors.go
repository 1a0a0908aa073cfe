package scene

import (
	"errors"
	"fmt"
)

// InvalidFormatError is returned for every structural, type or semantic
// problem found in a scene document. Parsing stops at the first one.
type InvalidFormatError struct {
	Msg string
}

func (e *InvalidFormatError) Error() string { return e.Msg }

func invalidFormat(format string, args ...interface{}) error {
	return &InvalidFormatError{Msg: fmt.Sprintf(format, args...)}
}

// withContext prefixes the message of an InvalidFormatError,
// other errors are returned unchanged.
func withContext(err error, format string, args ...interface{}) error {
	var ife *InvalidFormatError
	if !errors.As(err, &ife) {
		return err
	}
	return &InvalidFormatError{Msg: fmt.Sprintf(format, args...) + ": " + ife.Msg}
}

// IsInvalidFormat reports whether err (or one it wraps) is an InvalidFormatError.
func IsInvalidFormat(err error) bool {
	var ife *InvalidFormatError
	return errors.As(err, &ife)
}

var errNoDefaultColor = &InvalidFormatError{Msg: "no default color available"}

// ErrorMode determines how unknown keys in the screen and
// figure objects are handled.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips unknown keys.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs unknown keys as warnings.
	WarnErrorMode
	// StrictErrorMode rejects documents with unknown keys.
	StrictErrorMode
)
