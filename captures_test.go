package capi

import "testing"

func TestNewCaptures(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{`a`, 1},
		{`(a)`, 2},
		{`(a)(?:b)(?P<c>c)`, 3},
		{`((a)(b))`, 4},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			defer re.Free()
			caps := NewCaptures(re)
			defer caps.Free()

			if got := caps.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
			for i := 0; i < caps.Len(); i++ {
				if _, ok := caps.At(i); ok {
					t.Errorf("group %d participates before any search", i)
				}
			}
		})
	}
}

func TestCapturesFailedSearchKeepsPreviousGroups(t *testing.T) {
	re := MustCompile(`(\d+)`)
	defer re.Free()
	caps := NewCaptures(re)

	if !re.FindCaptures([]byte("ab 12"), 0, caps) {
		t.Fatal("expected match")
	}
	if re.FindCaptures([]byte("ab 12"), 5, caps) {
		t.Fatal("expected no match at end")
	}
	// A failed search does not promise to clear the buffer; group 0 must
	// still decode to a sane location if it was left alone.
	if m, ok := caps.At(0); ok && (m.Start > m.End || m.End > 5) {
		t.Errorf("group 0 = %+v after failed search", m)
	}
}

func TestMatchHelpers(t *testing.T) {
	m := Match{Start: 3, End: 7}
	if m.Len() != 4 || m.IsEmpty() {
		t.Errorf("%+v: Len() = %d, IsEmpty() = %v", m, m.Len(), m.IsEmpty())
	}
	e := Match{Start: 2, End: 2}
	if e.Len() != 0 || !e.IsEmpty() {
		t.Errorf("%+v: Len() = %d, IsEmpty() = %v", e, e.Len(), e.IsEmpty())
	}
}
