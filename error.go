package capi

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorKind identifies what an Error cell currently holds.
type ErrorKind int

const (
	// ErrorNone means the last fallible call succeeded (or none was made).
	ErrorNone ErrorKind = iota
	// ErrorDecode means the pattern bytes were not valid UTF-8.
	ErrorDecode
	// ErrorCompile means the engine rejected the pattern.
	ErrorCompile
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorDecode:
		return "decode"
	case ErrorCompile:
		return "compile"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a reusable diagnostic cell.
//
// A cell is passed to Compile and friends, which overwrite it with the outcome
// of the call. It holds exactly one of: no error, a *DecodeError or a
// *CompileError.
//
// An Error is not safe for concurrent use.
type Error struct {
	kind ErrorKind
	err  error

	// message caches the rendered text until the next state change.
	message *string
}

// NewError returns an empty cell.
func NewError() *Error {
	return &Error{}
}

// Free releases the cell. It must not be used afterwards.
func (e *Error) Free() {
	e.err = nil
	e.message = nil
}

// Kind returns the kind of the stored error.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

// IsErr reports whether the cell holds an error.
func (e *Error) IsErr() bool {
	return e.kind != ErrorNone
}

// Err returns the stored error, or nil. The result is a *DecodeError or a
// *CompileError and may be inspected with errors.As.
func (e *Error) Err() error {
	return e.err
}

// String renders the current state. Unlike Message it is never truncated.
func (e *Error) String() string {
	if e.kind == ErrorNone || e.err == nil {
		return "no error"
	}
	return e.err.Error()
}

// Message returns the rendered diagnostic, "no error" for an empty cell.
//
// The text is cut at the first NUL byte so that it can always be handed out
// as a C string; this only loses anything when the pattern itself contains
// NUL and the engine echoes it back. The result is cached until the cell is
// next overwritten, so repeated calls do not render again.
func (e *Error) Message() string {
	if e.message == nil {
		msg := e.String()
		if i := strings.IndexByte(msg, 0); i >= 0 {
			msg = msg[:i]
		}
		e.message = &msg
	}
	return *e.message
}

func (e *Error) set(kind ErrorKind, err error) {
	e.kind = kind
	e.err = err
	e.message = nil
}

// DecodeError reports pattern bytes that are not valid UTF-8.
type DecodeError struct {
	// ValidUpTo is the byte offset of the first invalid sequence.
	ValidUpTo int
	// ErrorLen is the length of the invalid sequence, 1 to 3 bytes. It is 0
	// when the input ends in the middle of a sequence that was valid so far.
	ErrorLen int
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.ErrorLen == 0 {
		return fmt.Sprintf("incomplete utf-8 byte sequence from index %d", e.ValidUpTo)
	}
	return fmt.Sprintf("invalid utf-8 sequence of %d bytes from index %d", e.ErrorLen, e.ValidUpTo)
}

// validateUTF8 returns nil if p is valid UTF-8, otherwise the position and
// length of the first bad sequence.
func validateUTF8(p []byte) *DecodeError {
	for i := 0; i < len(p); {
		if p[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size == 1 {
			return &DecodeError{ValidUpTo: i, ErrorLen: invalidLen(p[i:])}
		}
		i += size
	}
	return nil
}

// invalidLen returns the length of the longest prefix of p that could start
// a valid sequence before it goes wrong, or 0 if p ends first. p[0] must
// begin an invalid or truncated sequence.
func invalidLen(p []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var width int
	switch b := p[0]; {
	case b >= 0xC2 && b <= 0xDF:
		width = 2
	case b == 0xE0:
		width, lo = 3, 0xA0
	case b == 0xED:
		width, hi = 3, 0x9F
	case b >= 0xE1 && b <= 0xEF:
		width = 3
	case b == 0xF0:
		width, lo = 4, 0x90
	case b == 0xF4:
		width, hi = 4, 0x8F
	case b >= 0xF1 && b <= 0xF3:
		width = 4
	default:
		return 1
	}

	for i := 1; i < width; i++ {
		if i >= len(p) {
			return 0
		}
		// Only the second byte has a narrowed range.
		if p[i] < lo || p[i] > hi {
			return i
		}
		lo, hi = 0x80, 0xBF
	}
	return width
}

// CompileError reports a pattern rejected by the engine.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface. The engine's message is returned
// unchanged; for syntax errors it names the offending expression.
func (e *CompileError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the engine error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
