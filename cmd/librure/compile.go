package main

/*
#include <string.h>
#include "handles.h"
*/
import "C"

import (
	"fmt"
	"os"
	"unicode/utf8"
	"unsafe"

	"go.uber.org/zap"

	capi "github.com/coregx/coregex-capi"
)

//export rure_options_new
func rure_options_new() *C.rure_options {
	h := options.Insert(capi.NewOptions())
	return (*C.rure_options)(newRef(h))
}

//export rure_options_free
func rure_options_free(opts *C.rure_options) {
	if o, ok := release(options, "rure_options", unsafe.Pointer(opts)); ok {
		o.Free()
	}
}

//export rure_compile_options
func rure_compile_options(pattern *C.uint8_t, length C.size_t, opts *C.rure_options, err *C.rure_error) *C.rure {
	var o *capi.Options
	if opts != nil {
		o, _ = lookup(options, "rure_options", unsafe.Pointer(opts))
	}
	errOut := errorOut(err)

	re := capi.Compile(goBytes(pattern, length), o, errOut)
	if re == nil {
		if errOut != nil {
			Logger().Debug("compile failed", zap.Error(errOut.Err()))
		}
		return nil
	}
	return (*C.rure)(newRef(regexes.Insert(re)))
}

//export rure_compile
func rure_compile(pattern *C.char, err *C.rure_error) *C.rure {
	if pattern == nil {
		Logger().Debug("rure_compile called with NULL pattern")
		return nil
	}
	return rure_compile_options((*C.uint8_t)(unsafe.Pointer(pattern)), C.strlen(pattern), nil, err)
}

//export rure_compile_must
func rure_compile_must(pattern *C.char) *C.rure {
	re := capi.MustCompile(C.GoString(pattern))
	return (*C.rure)(newRef(regexes.Insert(re)))
}

//export rure_free
func rure_free(re *C.rure) {
	if r, ok := release(regexes, "rure", unsafe.Pointer(re)); ok {
		r.Free()
	}
}

//export rure_capture_name_index
func rure_capture_name_index(re *C.rure, name *C.char) C.int32_t {
	r, ok := lookup(regexes, "rure", unsafe.Pointer(re))
	if !ok || name == nil {
		return -1
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(name)), int(C.strlen(name)))
	return C.int32_t(r.CaptureNameIndex(raw))
}

//export rure_escape_must
func rure_escape_must(pattern *C.char) *C.char {
	s := C.GoString(pattern)
	if !utf8.ValidString(s) {
		fmt.Fprintln(os.Stderr, "pattern is not valid UTF-8")
		fmt.Fprintln(os.Stderr, "aborting from rure_escape_must")
		os.Exit(1)
	}
	return C.CString(capi.Escape(s))
}

//export rure_cstring_free
func rure_cstring_free(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}
