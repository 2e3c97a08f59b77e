package wide

import (
	"go.uber.org/zap"
)

const (
	// DefaultPoolSize is the number of buffers a pool keeps by default.
	DefaultPoolSize = 16
	// DefaultPoolCapacity is the largest buffer, in units, a pool keeps by default.
	DefaultPoolCapacity = 4096
)

// PoolStats counts pool activity since creation.
type PoolStats struct {
	Hits     uint64 // Get served from a pooled buffer
	Misses   uint64 // Get allocated a new buffer
	Returned uint64 // Put kept the buffer
	Dropped  uint64 // Put discarded the buffer
}

type poolConfig struct {
	logger      *zap.Logger
	maxSize     int
	maxCapacity int
	prealloc    int
	preallocCap int
}

// PoolOption configures a Pool.
type PoolOption func(*poolConfig)

// WithLimits sets the number of buffers kept and the largest capacity, in units, a
// returned buffer may have to be kept.
func WithLimits(maxSize, maxCapacity int) PoolOption {
	return func(c *poolConfig) {
		c.maxSize = maxSize
		c.maxCapacity = maxCapacity
	}
}

// WithPreallocated seeds the pool with count empty buffers of the given capacity, so
// the first Gets do not allocate. It also limits the pool to count buffers and keeps
// buffers up to max(capacity, DefaultPoolCapacity) units.
func WithPreallocated(count, capacity int) PoolOption {
	return func(c *poolConfig) {
		c.maxSize = count
		c.maxCapacity = max(capacity, DefaultPoolCapacity)
		c.prealloc = count
		c.preallocCap = capacity
	}
}

// WithLogger sets the logger used for pool diagnostics. Defaults to Logger().
func WithLogger(l *zap.Logger) PoolOption {
	return func(c *poolConfig) {
		c.logger = l
	}
}

// Pool keeps released UTF-16 buffers for reuse by later conversions.
//
// Get picks the first buffer large enough (first fit) and removes it by swapping in
// the last one, so the order of pooled buffers is not stable. Both Get and Put are
// linear in the number of pooled buffers, which is why the pool is meant to stay
// small (tens of buffers).
//
// A Pool is not safe for concurrent use.
type Pool struct {
	logger      *zap.Logger
	bufs        [][]uint16
	maxSize     int
	maxCapacity int
	stats       PoolStats
}

// NewPool creates a pool. Without options it keeps up to DefaultPoolSize buffers of
// at most DefaultPoolCapacity units.
func NewPool(opts ...PoolOption) *Pool {
	cfg := poolConfig{
		maxSize:     DefaultPoolSize,
		maxCapacity: DefaultPoolCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}
	cfg.maxSize = max(cfg.maxSize, 0)
	cfg.preallocCap = max(cfg.preallocCap, 0)

	p := &Pool{
		logger:      cfg.logger,
		bufs:        make([][]uint16, 0, max(cfg.maxSize, cfg.prealloc)),
		maxSize:     cfg.maxSize,
		maxCapacity: cfg.maxCapacity,
	}
	for range cfg.prealloc {
		p.bufs = append(p.bufs, make([]uint16, 0, cfg.preallocCap))
	}
	return p
}

// Get converts s into a pooled buffer, reusing a pooled buffer when one is large enough.
func (p *Pool) Get(s string) Pooled {
	buf := p.take(EncodedLen(s) + 1)
	buf = AppendEncoded(buf, s)
	return Pooled{buf: append(buf, 0)}
}

// GetPath is Get for a file system path, using the encoding of EncodePath.
func (p *Pool) GetPath(path string) Pooled {
	buf := p.take(PathLen(path) + 1)
	buf = AppendPath(buf, path)
	return Pooled{buf: append(buf, 0)}
}

// Put returns the buffer of h to the pool and detaches h, so its accessors report an
// empty handle afterwards.
//
// The buffer is kept only while the pool holds fewer than its size limit and the
// buffer's capacity is within the capacity limit; otherwise it is dropped. Put of a
// detached handle does nothing.
func (p *Pool) Put(h *Pooled) {
	if h == nil || h.buf == nil {
		return
	}
	buf := h.buf
	h.buf = nil

	if len(p.bufs) < p.maxSize && cap(buf) <= p.maxCapacity {
		p.bufs = append(p.bufs, buf[:0])
		p.stats.Returned++
		return
	}

	p.stats.Dropped++
	if ce := p.logger.Check(zap.DebugLevel, "wide pool dropped buffer"); ce != nil {
		ce.Write(
			zap.Int("capacity", cap(buf)),
			zap.Int("pooled", len(p.bufs)),
			zap.Int("max_size", p.maxSize),
			zap.Int("max_capacity", p.maxCapacity),
		)
	}
}

// Len returns the number of buffers currently pooled.
func (p *Pool) Len() int {
	return len(p.bufs)
}

// IsEmpty reports whether no buffers are pooled.
func (p *Pool) IsEmpty() bool {
	return len(p.bufs) == 0
}

// MaxSize returns the number of buffers the pool keeps at most.
func (p *Pool) MaxSize() int {
	return p.maxSize
}

// MaxCapacity returns the largest buffer capacity, in units, the pool keeps.
func (p *Pool) MaxCapacity() int {
	return p.maxCapacity
}

// Stats returns the activity counters.
func (p *Pool) Stats() PoolStats {
	return p.stats
}

// Clear drops all pooled buffers.
func (p *Pool) Clear() {
	p.ShrinkTo(0)
}

// ShrinkTo drops pooled buffers until at most n remain.
func (p *Pool) ShrinkTo(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(p.bufs) {
		return
	}
	clear(p.bufs[n:])
	p.bufs = p.bufs[:n]
}

// take removes the first pooled buffer with at least required capacity, or allocates one.
func (p *Pool) take(required int) []uint16 {
	for i, buf := range p.bufs {
		if cap(buf) < required {
			continue
		}
		last := len(p.bufs) - 1
		p.bufs[i] = p.bufs[last]
		p.bufs[last] = nil
		p.bufs = p.bufs[:last]
		p.stats.Hits++
		return buf[:0]
	}

	p.stats.Misses++
	if ce := p.logger.Check(zap.DebugLevel, "wide pool miss"); ce != nil {
		ce.Write(zap.Int("required", required), zap.Int("pooled", len(p.bufs)))
	}
	return make([]uint16, 0, required)
}

// Pooled is a null-terminated UTF-16 string whose buffer is checked out of a Pool.
//
// The handle owns the buffer until it is passed to Pool.Put, IntoUnits or IntoString.
// Pointers and slices obtained from it must not be used after that.
type Pooled struct {
	buf []uint16
}

// Ptr returns a pointer to the first unit, or nil for a detached handle.
func (h *Pooled) Ptr() *uint16 {
	if len(h.buf) == 0 {
		return nil
	}
	return &h.buf[0]
}

// Len returns the length in UTF-16 units, not including the terminator.
func (h *Pooled) Len() int {
	return max(len(h.buf)-1, 0)
}

// IsEmpty reports whether the string has no content.
func (h *Pooled) IsEmpty() bool {
	return h.Len() == 0
}

// Slice returns the units including the terminator.
func (h *Pooled) Slice() []uint16 {
	return h.buf
}

// StringLossy decodes the string, returning Replacement if it is not valid UTF-16.
func (h *Pooled) StringLossy() string {
	return decodeLossy(h.buf)
}

func (h *Pooled) String() string {
	return h.StringLossy()
}

// IntoUnits detaches the buffer from the handle and returns it. The buffer will not
// go back to any pool.
func (h *Pooled) IntoUnits() []uint16 {
	buf := h.buf
	h.buf = nil
	return buf
}

// IntoString detaches the buffer and converts it into a standalone String.
func (h *Pooled) IntoString() String {
	return FromUnits(h.IntoUnits())
}
