package capi

// Iter walks the successive non-overlapping matches of a Regex in one
// haystack.
//
// The haystack is not copied; the caller keeps it alive and unmodified for
// as long as the Iter is in use. Once Next or NextCaptures reports no match
// the iterator is exhausted and keeps reporting no match.
//
// An Iter is not safe for concurrent use.
type Iter struct {
	re       *Regex
	haystack []byte

	// lastEnd is where the next search starts.
	lastEnd int
	// lastMatchEnd is the end of the most recently reported match, -1 if
	// nothing has been reported yet.
	lastMatchEnd int
	done         bool
}

// Iter returns an iterator over the matches of r in haystack.
func (r *Regex) Iter(haystack []byte) *Iter {
	return NewIter(r, haystack)
}

// NewIter returns an iterator over the matches of re in haystack.
func NewIter(re *Regex, haystack []byte) *Iter {
	return &Iter{
		re:           re,
		haystack:     haystack,
		lastMatchEnd: -1,
	}
}

// Free releases the iterator. The Regex and haystack are not touched.
func (it *Iter) Free() {
	it.re = nil
	it.haystack = nil
	it.done = true
}

// Next returns the next match.
//
// Example:
//
//	re := capi.MustCompile(`a*`)
//	it := re.Iter([]byte("baaa"))
//	// (0,0) (1,4) then false; no empty match is reported at 4
func (it *Iter) Next() (Match, bool) {
	return it.step(it.re.findAt)
}

// NextCaptures advances like Next and writes the groups of the match into
// caps, which must have been created from the iterator's Regex.
func (it *Iter) NextCaptures(caps *Captures) bool {
	_, ok := it.step(func(haystack []byte, at int) (Match, bool) {
		return it.re.readCapturesAt(caps.slots, haystack, at)
	})
	return ok
}

// step runs searches from lastEnd until a match is accepted or the haystack
// is used up.
//
// An empty match moves lastEnd one byte past itself so the next search makes
// progress. An empty match that ends where the previously reported match
// ended is skipped: it would otherwise be reported right after a non-empty
// match, e.g. `a|` on "a" giving (0,1) followed by (1,1).
func (it *Iter) step(search func(haystack []byte, at int) (Match, bool)) (Match, bool) {
	for !it.done {
		if it.lastEnd > len(it.haystack) {
			it.done = true
			break
		}
		m, ok := search(it.haystack, it.lastEnd)
		if !ok {
			it.done = true
			break
		}

		if m.IsEmpty() {
			it.lastEnd = m.End + 1
			if m.End == it.lastMatchEnd {
				continue
			}
		} else {
			it.lastEnd = m.End
		}
		it.lastMatchEnd = m.End
		return m, true
	}
	return Match{}, false
}
