package main

/*
#include "handles.h"
*/
import "C"

import (
	"unsafe"
)

// Go test files cannot use cgo, so the conversions the tests need to drive
// the exported functions live here.

// cBytes copies b into C memory. The caller frees it with cFree.
func cBytes(b []byte) (*C.uint8_t, C.size_t) {
	if len(b) == 0 {
		return nil, 0
	}
	return (*C.uint8_t)(C.CBytes(b)), C.size_t(len(b))
}

// cString copies s into C memory as a NUL-terminated string.
func cString(s string) *C.char {
	return C.CString(s)
}

func cFree[T any](p *T) {
	C.free(unsafe.Pointer(p))
}

func goString(s *C.char) string {
	return C.GoString(s)
}

// newMatch allocates a rure_match in C memory.
func newMatch() *C.rure_match {
	m := (*C.rure_match)(C.malloc(C.sizeof_rure_match))
	m.start, m.end = 0, 0
	return m
}

func matchOffsets(m *C.rure_match) (start, end int) {
	return int(m.start), int(m.end)
}
