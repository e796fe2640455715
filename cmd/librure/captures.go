package main

/*
#include "handles.h"
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"

	capi "github.com/coregx/coregex-capi"
	"github.com/coregx/coregex-capi/internal/conv"
	"github.com/coregx/coregex-capi/internal/handle"
)

//export rure_captures_new
func rure_captures_new(re *C.rure) *C.rure_captures {
	r, ok := lookup(regexes, "rure", unsafe.Pointer(re))
	if !ok {
		return nil
	}
	h := captures.Insert(&capturesRef{
		caps: capi.NewCaptures(r),
		re:   refHandle(unsafe.Pointer(re)),
	})
	return (*C.rure_captures)(newRef(h))
}

//export rure_captures_free
func rure_captures_free(caps *C.rure_captures) {
	if c, ok := release(captures, "rure_captures", unsafe.Pointer(caps)); ok {
		c.caps.Free()
	}
}

//export rure_captures_at
func rure_captures_at(caps *C.rure_captures, i C.size_t, match *C.rure_match) C.bool {
	c, ok := lookup(captures, "rure_captures", unsafe.Pointer(caps))
	if !ok {
		return false
	}
	idx := conv.ClampOffset(uint64(i))
	if idx >= c.caps.Len() {
		Logger().Debug("capture group out of range",
			zap.Int("group", idx),
			zap.Int("len", c.caps.Len()))
		return false
	}
	m, ok := c.caps.At(idx)
	if !ok {
		return false
	}
	writeMatch(match, m)
	return true
}

//export rure_captures_len
func rure_captures_len(caps *C.rure_captures) C.size_t {
	c, ok := lookup(captures, "rure_captures", unsafe.Pointer(caps))
	if !ok {
		return 0
	}
	return C.size_t(conv.IntToSize(c.caps.Len()))
}

// capturesFor resolves caps and checks it was created for the regex with
// handle re.
func capturesFor(caps *C.rure_captures, re handle.Handle) (*capi.Captures, bool) {
	c, ok := lookup(captures, "rure_captures", unsafe.Pointer(caps))
	if !ok {
		return nil, false
	}
	if c.re != re {
		Logger().Debug("captures used with a different regex",
			zap.Uint64("captures_regex", uint64(c.re)),
			zap.Uint64("regex", uint64(re)))
		return nil, false
	}
	return c.caps, true
}

func writeMatch(dst *C.rure_match, m capi.Match) {
	if dst == nil {
		return
	}
	dst.start = C.size_t(conv.IntToSize(m.Start))
	dst.end = C.size_t(conv.IntToSize(m.End))
}
