// Package names implements the forward-writable deduplicating string
// pool used by every archive assembler (C2). A writer does not
// generally know the final pool offset of a name at the moment it
// needs to reference one, so it registers a placeholder instead: the
// pool is laid out once, after every reference has been collected,
// and every placeholder is back-patched in a single resolve pass.
package names

import (
	"github.com/gc3dtools/librii/rstream"
)

// patch is a single back-patch obligation: rewrite the u32 at
// placeholderOffset (an absolute offset in the writer's buffer) to
// poolOffset(name) - structBase.
type patch struct {
	placeholderOffset int
	structBase        int
	name              string
}

// Pool is a single-writer, single-resolve string pool. Each archive
// write constructs its own Pool and discards it on completion; it is
// not safe to share across archive writes or goroutines (§5).
type Pool struct {
	patches []patch
	offsets map[string]int // name -> offset relative to the pool's own base, valid only after resolve
	order   []string       // first-seen order, duplicates removed
	seen    map[string]bool
}

// NewPool returns an empty pool.
func NewPool() *Pool {

	return &Pool{
		offsets: make(map[string]int),
		seen:    make(map[string]bool),
	}
}

// WriteNameForward stamps a 32-bit placeholder at the writer's current
// cursor and registers a back-patch entry. structBase is the absolute
// offset of the record that owns this reference; the final patched
// value is poolOffset(name) - structBase, so the same pool can serve
// records written at addresses not yet known when the name is
// registered.
func (p *Pool) WriteNameForward(w *rstream.Writer, structBase int, name string) {

	placeholder := w.Pos()
	w.WriteU32(0xFFFFFFFF)
	p.patches = append(p.patches, patch{placeholderOffset: placeholder, structBase: structBase, name: name})

	if !p.seen[name] {
		p.seen[name] = true
		p.order = append(p.order, name)
	}
}

// poolLayout computes each deduplicated name's offset relative to the
// start of the pool body (before pool_base is added), the way the
// entries will physically appear: each name preceded by a big-endian
// u32 length, followed by a NUL byte.
func (p *Pool) poolLayout() (body []byte, offsets map[string]int) {

	w := rstream.NewWriter()
	offsets = make(map[string]int)
	for _, name := range p.order {
		offsets[name] = w.Pos()
		w.WriteU32(uint32(len(name)))
		w.WriteCString(name)
	}
	return w.Bytes(), offsets
}

// Body returns the deduplicated, laid-out pool bytes (each name
// preceded by a big-endian u32 length and followed by a NUL byte).
// Call once WriteNameForward registrations are complete; the caller
// appends the result to the stream at whatever offset becomes
// poolBase for the following Resolve call.
func (p *Pool) Body() []byte {

	body, offsets := p.poolLayout()
	p.offsets = offsets
	return body
}

// Resolve rewrites every registered placeholder to
// poolOffset(name) - structBase, given that the pool body (from Body)
// has been placed at the absolute offset poolBase. It must be called
// exactly once, after Body, and after every WriteNameForward call the
// pool will ever see.
func (p *Pool) Resolve(w *rstream.Writer, poolBase int) {

	for _, pt := range p.patches {
		nameOffset := poolBase + p.offsets[pt.name]
		w.WriteU32At(pt.placeholderOffset, uint32(nameOffset-pt.structBase))
	}
}

// Offset returns the resolved, pool-relative offset of name. Valid
// only after Body or Resolve has run.
func (p *Pool) Offset(name string) (int, bool) {

	off, ok := p.offsets[name]
	return off, ok
}

// Len returns the number of distinct names registered so far.
func (p *Pool) Len() int { return len(p.order) }
