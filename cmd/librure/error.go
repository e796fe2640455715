package main

/*
#include "handles.h"
*/
import "C"

import (
	"unsafe"

	capi "github.com/coregx/coregex-capi"
)

// errorCell pairs an Error with the C copy of its message.
type errorCell struct {
	err  *capi.Error
	cmsg *C.char
}

// invalidate frees the C message. It runs before every call that may
// overwrite the cell.
func (c *errorCell) invalidate() {
	if c.cmsg != nil {
		C.free(unsafe.Pointer(c.cmsg))
		c.cmsg = nil
	}
}

func (c *errorCell) message() *C.char {
	if c.cmsg == nil {
		c.cmsg = C.CString(c.err.Message())
	}
	return c.cmsg
}

//export rure_error_new
func rure_error_new() *C.rure_error {
	h := errCells.Insert(&errorCell{err: capi.NewError()})
	return (*C.rure_error)(newRef(h))
}

//export rure_error_free
func rure_error_free(err *C.rure_error) {
	cell, ok := release(errCells, "rure_error", unsafe.Pointer(err))
	if !ok {
		return
	}
	cell.invalidate()
	cell.err.Free()
}

//export rure_error_message
func rure_error_message(err *C.rure_error) *C.char {
	cell, ok := lookup(errCells, "rure_error", unsafe.Pointer(err))
	if !ok {
		return nil
	}
	return cell.message()
}

// errorOut resolves the optional error argument of the compile functions
// and drops its cached message. A NULL or unknown cell yields nil.
func errorOut(err *C.rure_error) *capi.Error {
	if err == nil {
		return nil
	}
	cell, ok := lookup(errCells, "rure_error", unsafe.Pointer(err))
	if !ok {
		return nil
	}
	cell.invalidate()
	return cell.err
}
