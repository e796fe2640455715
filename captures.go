package capi

// Captures holds the offsets of every capture group of one match.
//
// Slots 2i and 2i+1 are the start and end of group i; -1 marks a group that
// did not take part in the match. A Captures is sized for the Regex it was
// created from and must only be used with that Regex. It is reused across
// searches and is not safe for concurrent use.
type Captures struct {
	slots []int
}

// NewCaptures allocates a buffer for the groups of re, with every group
// marked as not participating.
func NewCaptures(re *Regex) *Captures {
	slots := make([]int, 2*re.CapturesLen())
	for i := range slots {
		slots[i] = -1
	}
	return &Captures{slots: slots}
}

// Free releases the buffer.
func (c *Captures) Free() {
	c.slots = nil
}

// Len returns the number of groups, including group 0.
func (c *Captures) Len() int {
	return len(c.slots) / 2
}

// At returns the location of group i from the last successful search.
// It reports false if the group did not participate. i must be less than
// Len.
//
// Example:
//
//	re := capi.MustCompile(`(\w+)@(\w+)`)
//	caps := capi.NewCaptures(re)
//	re.FindCaptures([]byte("mail user@host"), 0, caps)
//	m, _ := caps.At(2)
//	// m == capi.Match{Start: 10, End: 14}
func (c *Captures) At(i int) (Match, bool) {
	start, end := c.slots[i*2], c.slots[i*2+1]
	if start < 0 || end < 0 {
		return Match{}, false
	}
	return Match{Start: start, End: end}, true
}
