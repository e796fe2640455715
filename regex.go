// Package capi exposes the coregex engine through a handle-oriented surface
// that can be driven from outside Go.
//
// Every object is created by exactly one constructor and released by exactly
// one Free method. The same contract is exported as a C function set by
// cmd/librure, so the Go API and the C API behave identically:
//
//   - Error: a reusable diagnostic cell filled in by failed compilations
//   - Regex: a compiled pattern plus its capture-name table
//   - Captures: a fixed-size slot buffer for one Regex
//   - Iter: a cursor over all non-overlapping matches in one haystack
//   - Match: a plain (start, end) pair of byte offsets, end exclusive
//
// Basic usage:
//
//	errCell := capi.NewError()
//	defer errCell.Free()
//
//	re := capi.Compile([]byte(`(?P<year>\d{4})-(\d{2})`), nil, errCell)
//	if re == nil {
//	    log.Fatal(errCell.Message())
//	}
//	defer re.Free()
//
//	it := re.Iter([]byte("2024-01 and 2025-02"))
//	defer it.Free()
//	for {
//	    m, ok := it.Next()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(m.Start, m.End)
//	}
//
// Offsets are byte offsets into the haystack. A start offset passed to a
// query is a scan origin, not a new beginning of input: `^` still only
// matches at offset 0 unless the pattern is multi-line.
//
// A Regex is safe for concurrent use by multiple goroutines. Captures, Iter
// and Error values are not; each must be confined to one goroutine at a time.
package capi

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/coregx/coregex"
	"github.com/coregx/coregex/meta"
)

// Overridable for tests of MustCompile.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Match is the location of a match or of one capture group.
type Match struct {
	Start int
	End   int
}

// Len returns the length of the match in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// IsEmpty reports whether the match is zero-width.
func (m Match) IsEmpty() bool {
	return m.Start == m.End
}

// Regex is a compiled pattern.
//
// A Regex never changes after Compile returns it. Captures and Iter values
// created from it must not be used after Free.
type Regex struct {
	engine       *meta.Engine
	pattern      string
	groups       int
	captureNames map[string]int32
}

// Compile compiles pattern, which must be valid UTF-8.
//
// opts may be nil. If errOut is non-nil it is overwritten with the outcome of
// this call: ErrorNone on success, ErrorDecode when pattern is not UTF-8 and
// ErrorCompile when the engine rejects it. Without an Error cell a nil result
// is the only failure signal.
//
// Example:
//
//	errCell := capi.NewError()
//	re := capi.Compile([]byte("("), nil, errCell)
//	// re == nil
//	// errCell.Message() == "error parsing regexp: missing closing ): `(`"
func Compile(pattern []byte, opts *Options, errOut *Error) *Regex {
	if derr := validateUTF8(pattern); derr != nil {
		if errOut != nil {
			errOut.set(ErrorDecode, derr)
		}
		return nil
	}

	src := string(pattern)
	engine, err := meta.Compile(src)
	if err != nil {
		if errOut != nil {
			errOut.set(ErrorCompile, &CompileError{Pattern: src, Err: err})
		}
		return nil
	}

	if errOut != nil {
		errOut.set(ErrorNone, nil)
	}
	return newRegex(engine, src)
}

// CompileString compiles a pattern given as a string.
//
// This is the counterpart of rure_compile, which takes a NUL-terminated
// pattern and uses the default options.
func CompileString(pattern string, errOut *Error) *Regex {
	return Compile([]byte(pattern), nil, errOut)
}

// MustCompile compiles pattern and terminates the process if that fails.
//
// The rendered error is written to stderr before exiting with status 1. Use it
// only for patterns under the caller's control (constants, tests), never for
// untrusted input.
func MustCompile(pattern string) *Regex {
	errCell := NewError()
	re := CompileString(pattern, errCell)
	if errCell.IsErr() {
		fmt.Fprintln(stderr, errCell.Message())
		fmt.Fprintln(stderr, "aborting from rure_compile_must")
		exit(1)
		return nil
	}
	return re
}

func newRegex(engine *meta.Engine, pattern string) *Regex {
	names := engine.SubexpNames()
	captureNames := make(map[string]int32, len(names))
	// Group 0 is the whole match and is never named.
	for i := 1; i < len(names); i++ {
		if names[i] != "" {
			captureNames[names[i]] = int32(i)
		}
	}
	return &Regex{
		engine:       engine,
		pattern:      pattern,
		groups:       engine.NumCaptures(),
		captureNames: captureNames,
	}
}

// Free releases the compiled pattern. The Regex, and every Captures and Iter
// derived from it, must not be used afterwards.
func (r *Regex) Free() {
	r.engine = nil
	r.captureNames = nil
}

// String returns the source text used to compile the pattern.
func (r *Regex) String() string {
	return r.pattern
}

// CapturesLen returns the number of capture groups including group 0.
func (r *Regex) CapturesLen() int {
	return r.groups
}

// CaptureNames returns the group names in index order. Unnamed groups,
// including group 0, have an empty name.
func (r *Regex) CaptureNames() []string {
	names := r.engine.SubexpNames()
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// CaptureNameIndex returns the index of the group called name, or -1 if the
// pattern has no such group or name is not valid UTF-8.
func (r *Regex) CaptureNameIndex(name []byte) int32 {
	if !utf8.Valid(name) {
		return -1
	}
	if i, ok := r.captureNames[string(name)]; ok {
		return i
	}
	return -1
}

// IsMatch reports whether the pattern matches anywhere in haystack[start:].
//
// Example:
//
//	re := capi.MustCompile(`\p{So}$`)
//	re.IsMatch([]byte("snowman: ☃"), 0) // true
func (r *Regex) IsMatch(haystack []byte, start int) bool {
	if start == 0 {
		return r.engine.IsMatch(haystack)
	}
	_, ok := r.findAt(haystack, start)
	return ok
}

// Find returns the leftmost match starting at or after start.
//
// Example:
//
//	re := capi.MustCompile(`\d+`)
//	m, ok := re.Find([]byte("age: 42"), 0)
//	// m == capi.Match{Start: 5, End: 7}, ok == true
func (r *Regex) Find(haystack []byte, start int) (Match, bool) {
	return r.findAt(haystack, start)
}

// FindCaptures finds the leftmost match starting at or after start and writes
// the offsets of every group into caps, which must have been created from r.
//
// When there is no match the contents of caps are unspecified.
func (r *Regex) FindCaptures(haystack []byte, start int, caps *Captures) bool {
	_, ok := r.readCapturesAt(caps.slots, haystack, start)
	return ok
}

func (r *Regex) findAt(haystack []byte, at int) (Match, bool) {
	if at < 0 || at > len(haystack) {
		return Match{}, false
	}
	start, end, found := r.engine.FindIndicesAt(haystack, at)
	if !found {
		return Match{}, false
	}
	return Match{Start: start, End: end}, true
}

// readCapturesAt fills slots with the group offsets of the leftmost match at
// or after at and returns the overall match.
func (r *Regex) readCapturesAt(slots []int, haystack []byte, at int) (Match, bool) {
	if at < 0 || at > len(haystack) {
		return Match{}, false
	}
	m := r.engine.FindSubmatchAt(haystack, at)
	if m == nil {
		return Match{}, false
	}

	groups := len(slots) / 2
	if n := m.NumCaptures(); n < groups {
		groups = n
	}
	for i := 0; i < groups; i++ {
		idx := m.GroupIndex(i)
		if len(idx) >= 2 && idx[0] >= 0 && idx[1] >= 0 {
			slots[i*2] = idx[0]
			slots[i*2+1] = idx[1]
		} else {
			slots[i*2] = -1
			slots[i*2+1] = -1
		}
	}
	for i := groups * 2; i < len(slots); i++ {
		slots[i] = -1
	}

	whole := m.GroupIndex(0)
	return Match{Start: whole[0], End: whole[1]}, true
}

// Escape returns a pattern that matches s literally.
//
// Example:
//
//	capi.Escape("1.5+2") // `1\.5\+2`
func Escape(s string) string {
	return coregex.QuoteMeta(s)
}
