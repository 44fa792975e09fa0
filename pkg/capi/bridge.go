// Package capi exposes managed values to foreign code through
// reference-counted handles. A handle owns a NUL-terminated copy of a bytes
// value so that foreign code can read and write it in place; other values
// are held by reference.
package capi

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/phroun/objspace"
)

// Handle is the foreign view of a managed value
type Handle struct {
	refcnt atomic.Int64
	id     uint64
	kind   objspace.Kind

	// buf holds size bytes followed by a NUL for bytes handles
	buf  []byte
	size int

	// value is the managed value this handle was made from. For bytes it is
	// dropped whenever the buffer is replaced and rebuilt on demand.
	value objspace.Value
	dead  bool
}

// ID returns the handle's stable identifier
func (h *Handle) ID() uint64 { return h.id }

// Kind returns the kind of the referenced value
func (h *Handle) Kind() objspace.Kind { return h.kind }

// Refcount returns the current reference count
func (h *Handle) Refcount() int64 { return h.refcnt.Load() }

// Bridge owns the handles for one Space
type Bridge struct {
	space  *objspace.Space
	logger *objspace.Logger

	mu      sync.Mutex
	handles map[uint64]*Handle
	byValue map[objspace.Value]*Handle
	nextID  uint64

	// MaxSize bounds bytes buffers; allocations beyond it fail with
	// MemoryError
	MaxSize int
}

// NewBridge creates a bridge for space. The buffer limit comes from the
// space's MaxHandleSize setting.
func NewBridge(space *objspace.Space) *Bridge {
	limit := space.Config().MaxHandleSize
	if limit <= 0 {
		limit = math.MaxInt32
	}
	return &Bridge{
		space:   space,
		logger:  space.Logger(),
		handles: make(map[uint64]*Handle),
		byValue: make(map[objspace.Value]*Handle),
		MaxSize: limit,
	}
}

// Space returns the space the bridge serves
func (b *Bridge) Space() *objspace.Space { return b.space }

// Live returns the number of handles not yet deallocated
func (b *Bridge) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handles)
}

func (b *Bridge) allocLocked(kind objspace.Kind) *Handle {
	b.nextID++
	h := &Handle{id: b.nextID, kind: kind}
	h.refcnt.Store(1)
	b.handles[h.id] = h
	return h
}

func (b *Bridge) newHandleLocked(v objspace.Value) *Handle {
	h := b.allocLocked(v.Kind())
	h.value = v
	if bv, ok := v.(*objspace.Bytes); ok {
		h.setBuffer(bv.Bytes(), bv.Len())
	}
	return h
}

// setBuffer replaces the buffer with n bytes copied from data, zero filled
// past len(data), followed by a NUL
func (h *Handle) setBuffer(data []byte, n int) {
	buf := make([]byte, n+1)
	copy(buf, data[:min(len(data), n)])
	h.buf = buf
	h.size = n
}

// MakeRef returns the handle for v, creating it if needed. The caller owns
// one reference to the result.
func (b *Bridge) MakeRef(v objspace.Value) *Handle {
	if v == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if h, ok := b.byValue[v]; ok && tryRetain(h) {
		return h
	}
	h := b.newHandleLocked(v)
	b.byValue[v] = h
	b.logger.TraceCat(objspace.CatMemory, "handle %d created for %s", h.id, v.TypeName())
	return h
}

// NewHandle always allocates a fresh handle for v with a reference count
// of one
func (b *Bridge) NewHandle(v objspace.Value) *Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.newHandleLocked(v)
	b.logger.TraceCat(objspace.CatMemory, "handle %d allocated for %s", h.id, v.TypeName())
	return h
}

// Retain adds a reference to h
func (b *Bridge) Retain(h *Handle) {
	if h == nil {
		return
	}
	if h.refcnt.Add(1) <= 1 {
		panic("capi: retain of a deallocated handle")
	}
}

// tryRetain adds a reference unless the count already reached zero and
// the handle is on its way to deallocation
func tryRetain(h *Handle) bool {
	for {
		n := h.refcnt.Load()
		if n <= 0 {
			return false
		}
		if h.refcnt.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release drops a reference to h and deallocates it when none remain
func (b *Bridge) Release(h *Handle) {
	if h == nil {
		return
	}
	n := h.refcnt.Add(-1)
	switch {
	case n < 0:
		panic("capi: reference count below zero")
	case n == 0:
		b.dealloc(h)
	}
}

func (b *Bridge) dealloc(h *Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.handles, h.id)
	if h.value != nil && b.byValue[h.value] == h {
		delete(b.byValue, h.value)
	}
	h.buf = nil
	h.value = nil
	h.dead = true
	b.logger.TraceCat(objspace.CatMemory, "handle %d deallocated", h.id)
}

// FromRef returns the managed value behind h. Bytes values are rebuilt
// from the buffer when it has changed since the last call.
func (b *Bridge) FromRef(h *Handle) objspace.Value {
	if h == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if h.dead {
		panic("capi: use of a deallocated handle")
	}
	if h.value == nil && h.kind == objspace.KindBytes {
		data := make([]byte, h.size)
		copy(data, h.buf)
		h.value = objspace.NewBytes(data)
		if _, taken := b.byValue[h.value]; !taken {
			b.byValue[h.value] = h
		}
	}
	return h.value
}

// WithRef runs fn with a reference to v that is released however fn
// returns
func (b *Bridge) WithRef(v objspace.Value, fn func(h *Handle) error) error {
	h := b.MakeRef(v)
	defer b.Release(h)
	return fn(h)
}
