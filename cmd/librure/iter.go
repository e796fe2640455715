package main

/*
#include "handles.h"
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"
)

//export rure_iter_new
func rure_iter_new(re *C.rure, haystack *C.uint8_t, length C.size_t) *C.rure_iter {
	r, ok := lookup(regexes, "rure", unsafe.Pointer(re))
	if !ok {
		return nil
	}
	h := iters.Insert(&iterRef{
		it: r.Iter(goBytes(haystack, length)),
		re: refHandle(unsafe.Pointer(re)),
	})
	return (*C.rure_iter)(newRef(h))
}

//export rure_iter_free
func rure_iter_free(it *C.rure_iter) {
	if i, ok := release(iters, "rure_iter", unsafe.Pointer(it)); ok {
		i.it.Free()
	}
}

// liveIter resolves it and checks that its regex has not been freed.
func liveIter(it *C.rure_iter) (*iterRef, bool) {
	i, ok := lookup(iters, "rure_iter", unsafe.Pointer(it))
	if !ok {
		return nil, false
	}
	if _, ok := regexes.Get(i.re); !ok {
		Logger().Debug("iterator outlived its regex", zap.Uint64("regex", uint64(i.re)))
		return nil, false
	}
	return i, true
}

//export rure_iter_next
func rure_iter_next(it *C.rure_iter, match *C.rure_match) C.bool {
	i, ok := liveIter(it)
	if !ok {
		return false
	}
	m, ok := i.it.Next()
	if !ok {
		return false
	}
	writeMatch(match, m)
	return true
}

//export rure_iter_next_captures
func rure_iter_next_captures(it *C.rure_iter, caps *C.rure_captures) C.bool {
	i, ok := liveIter(it)
	if !ok {
		return false
	}
	c, ok := capturesFor(caps, i.re)
	if !ok {
		return false
	}
	return C.bool(i.it.NextCaptures(c))
}
