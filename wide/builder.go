package wide

// Builder accumulates UTF-16 units and finalizes them into a null-terminated buffer.
//
// No terminator is kept while appending; Len and IsEmpty report content only.
// A Builder is not safe for concurrent use.
type Builder struct {
	buf []uint16
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewBuilderSize returns an empty builder with room for n units. Negative n is treated as 0.
func NewBuilderSize(n int) *Builder {
	return &Builder{buf: make([]uint16, 0, max(n, 0))}
}

// Push appends the UTF-16 encoding of s.
func (b *Builder) Push(s string) *Builder {
	b.buf = AppendEncoded(b.buf, s)
	return b
}

// PushUnit appends a single code unit as-is.
func (b *Builder) PushUnit(u uint16) *Builder {
	b.buf = append(b.buf, u)
	return b
}

// PushPath appends path using the native path encoding.
func (b *Builder) PushPath(path string) *Builder {
	b.buf = AppendPath(b.buf, path)
	return b
}

// Len returns the number of accumulated units.
func (b *Builder) Len() int {
	return len(b.buf)
}

// IsEmpty reports whether nothing has been accumulated.
func (b *Builder) IsEmpty() bool {
	return len(b.buf) == 0
}

// Cap returns the capacity of the current buffer.
func (b *Builder) Cap() int {
	return cap(b.buf)
}

// Reset discards the content and keeps the buffer for reuse.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Build appends the terminator and returns the finished buffer. The builder no
// longer references the buffer and is empty afterwards.
func (b *Builder) Build() []uint16 {
	return b.BuildAndClear()
}

// BuildAndClear returns the terminated buffer and leaves the builder ready for
// another accumulation.
//
// The returned buffer is handed over, so the next accumulation starts from a fresh,
// zero-capacity buffer. Use AppendTo to keep the grown capacity instead.
func (b *Builder) BuildAndClear() []uint16 {
	out := append(b.buf, 0)
	b.buf = nil
	return out
}

// AppendTo appends the terminated content to dst, resets the builder and keeps its
// buffer, so repeated builds reuse the same capacity.
func (b *Builder) AppendTo(dst []uint16) []uint16 {
	dst = append(dst, b.buf...)
	dst = append(dst, 0)
	b.buf = b.buf[:0]
	return dst
}

// String decodes the current content the way Decode would decode the built buffer,
// returning Replacement if it is not valid UTF-16.
func (b *Builder) String() string {
	return decodeLossy(b.buf)
}
