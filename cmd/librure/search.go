package main

/*
#include "handles.h"
*/
import "C"

import (
	"unsafe"

	"github.com/coregx/coregex-capi/internal/conv"
)

//export rure_is_match
func rure_is_match(re *C.rure, haystack *C.uint8_t, length C.size_t, start C.size_t) C.bool {
	r, ok := lookup(regexes, "rure", unsafe.Pointer(re))
	if !ok {
		return false
	}
	return C.bool(r.IsMatch(goBytes(haystack, length), conv.ClampOffset(uint64(start))))
}

//export rure_find
func rure_find(re *C.rure, haystack *C.uint8_t, length C.size_t, start C.size_t, match *C.rure_match) C.bool {
	r, ok := lookup(regexes, "rure", unsafe.Pointer(re))
	if !ok {
		return false
	}
	m, ok := r.Find(goBytes(haystack, length), conv.ClampOffset(uint64(start)))
	if !ok {
		return false
	}
	writeMatch(match, m)
	return true
}

//export rure_find_captures
func rure_find_captures(re *C.rure, haystack *C.uint8_t, length C.size_t, start C.size_t, caps *C.rure_captures) C.bool {
	r, ok := lookup(regexes, "rure", unsafe.Pointer(re))
	if !ok {
		return false
	}
	c, ok := capturesFor(caps, refHandle(unsafe.Pointer(re)))
	if !ok {
		return false
	}
	return C.bool(r.FindCaptures(goBytes(haystack, length), conv.ClampOffset(uint64(start)), c))
}
