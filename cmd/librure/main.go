// Command librure is the C shared library build of the capi package.
//
// Build it with
//
//	go build -buildmode=c-shared -o librure.so ./cmd/librure
//
// and compile C code against rure.h in this directory. Objects never leave
// Go memory: C receives small malloc'd references carrying a handle id, and
// each call resolves the id in the table for its type. A freed or foreign
// reference fails to resolve and the call reports no match, or does nothing,
// instead of touching Go memory.
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

func main() {}

var (
	regexes  = handle.NewTable[*capi.Regex]()
	options  = handle.NewTable[*capi.Options]()
	errCells = handle.NewTable[*errorCell]()
	captures = handle.NewTable[*capturesRef]()
	iters    = handle.NewTable[*iterRef]()
)

// capturesRef remembers which regex a buffer was sized for.
type capturesRef struct {
	caps *capi.Captures
	re   handle.Handle
}

// iterRef remembers the regex an iterator borrows so that stepping an
// iterator whose regex was freed fails cleanly.
type iterRef struct {
	it *capi.Iter
	re handle.Handle
}

func newRef(h handle.Handle) unsafe.Pointer {
	ref := (*C.struct_rure_ref)(C.malloc(C.sizeof_struct_rure_ref))
	ref.id = C.uint64_t(h)
	return unsafe.Pointer(ref)
}

func refHandle(p unsafe.Pointer) handle.Handle {
	if p == nil {
		return 0
	}
	return handle.Handle((*C.struct_rure_ref)(p).id)
}

func freeRef(p unsafe.Pointer) {
	(*C.struct_rure_ref)(p).id = 0
	C.free(p)
}

// lookup resolves a reference received from C.
func lookup[T any](tbl *handle.Table[T], kind string, p unsafe.Pointer) (T, bool) {
	h := refHandle(p)
	v, ok := tbl.Get(h)
	if !ok {
		Logger().Debug("unknown handle",
			zap.String("kind", kind),
			zap.Uint64("id", uint64(h)),
			zap.Bool("null", p == nil))
	}
	return v, ok
}

// release removes the object behind p and frees the reference. An unknown
// reference is left alone: it may already have been freed.
func release[T any](tbl *handle.Table[T], kind string, p unsafe.Pointer) (T, bool) {
	h := refHandle(p)
	v, ok := tbl.Remove(h)
	if !ok {
		if p != nil {
			Logger().Debug("free of unknown handle",
				zap.String("kind", kind),
				zap.Uint64("id", uint64(h)))
		}
		return v, false
	}
	freeRef(p)
	return v, true
}

// goBytes views C memory as a byte slice without copying.
func goBytes(p *C.uint8_t, n C.size_t) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), conv.SizeToInt(uint64(n)))
}
