package capi

// Options is reserved for future compile-time settings such as case
// folding or size limits. It has no fields yet and passing it, or nil,
// to Compile makes no difference.
type Options struct{}

// NewOptions returns the default (and currently only) options.
func NewOptions() *Options {
	return &Options{}
}

// Free releases the options.
func (o *Options) Free() {}
