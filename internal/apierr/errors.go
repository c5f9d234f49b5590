package apierr

import "fmt"

// Error is the single failure type returned by the Walti client. Msg and
// Err are both optional.
type Error struct {
	Msg string
	Err error
}

func (e *Error) Error() string {
	return "walti: " + e.text()
}

// text is the message without the package prefix, so nested Errors print
// it once.
func (e *Error) text() string {
	var cause string
	if e.Err != nil {
		if inner, ok := e.Err.(*Error); ok {
			cause = inner.text()
		} else {
			cause = e.Err.Error()
		}
	}
	switch {
	case e.Msg != "" && cause != "":
		return e.Msg + ": " + cause
	case e.Msg != "":
		return e.Msg
	case cause != "":
		return cause
	default:
		return "api error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an Error carrying only a message.
func New(msg string) error {
	return &Error{Msg: msg}
}

// Errorf formats a message into a new Error.
func Errorf(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches msg to err. A nil err yields nil so call sites can wrap
// unconditionally.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Msg: msg, Err: err}
}
