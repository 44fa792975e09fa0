package capi

import (
	"bytes"

	"github.com/phroun/objspace"
)

func (b *Bridge) checkSize(n int) error {
	if n > b.MaxSize {
		b.logger.DebugCat(objspace.CatMemory, "buffer of %d bytes exceeds the limit of %d", n, b.MaxSize)
		return objspace.Errorf(objspace.MemoryError, "cannot allocate %d bytes", n)
	}
	return nil
}

func badInternalCall() error {
	return objspace.Errorf(objspace.SystemError, "bad internal call")
}

func expectedBytes(h *Handle) error {
	name := h.kind.String()
	if h.value != nil {
		name = h.value.TypeName()
	}
	return objspace.Errorf(objspace.TypeError, "expected bytes, %s found", name)
}

// BytesFromStringAndSize returns a new bytes handle of n bytes copied from
// data. A nil data leaves the buffer zeroed for the caller to fill in.
func (b *Bridge) BytesFromStringAndSize(data []byte, n int) (*Handle, error) {
	if n < 0 {
		return nil, objspace.Errorf(objspace.SystemError, "negative size passed to BytesFromStringAndSize")
	}
	if err := b.checkSize(n); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.allocLocked(objspace.KindBytes)
	h.setBuffer(data, n)
	if data != nil {
		h.value = objspace.NewBytes(append([]byte{}, h.buf[:n]...))
	}
	return h, nil
}

// BytesFromString returns a new bytes handle holding s up to its first NUL
func (b *Bridge) BytesFromString(s string) (*Handle, error) {
	data := []byte(s)
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return b.BytesFromStringAndSize(data, len(data))
}

// BytesSize returns the length of the bytes behind h
func (b *Bridge) BytesSize(h *Handle) (int, error) {
	if h == nil {
		return -1, badInternalCall()
	}
	if h.kind != objspace.KindBytes {
		return -1, expectedBytes(h)
	}
	return h.size, nil
}

// AsString returns the handle's buffer. Writes through the slice are only
// meaningful on a handle nobody else has seen yet.
func (b *Bridge) AsString(h *Handle) ([]byte, error) {
	if h == nil {
		return nil, badInternalCall()
	}
	if h.kind != objspace.KindBytes {
		return nil, expectedBytes(h)
	}
	return h.buf[:h.size], nil
}

// AsStringAndSize returns the buffer and its length. Without withLen the
// caller relies on NUL termination, so embedded NULs are a TypeError.
func (b *Bridge) AsStringAndSize(h *Handle, withLen bool) ([]byte, int, error) {
	buf, err := b.AsString(h)
	if err != nil {
		return nil, -1, err
	}
	if !withLen && bytes.IndexByte(buf, 0) >= 0 {
		return nil, -1, objspace.Errorf(objspace.TypeError, "expected bytes without null bytes")
	}
	return buf, h.size, nil
}

// Resize changes the length of the bytes handle in *slot to n, keeping the
// common prefix and terminating with a NUL. The handle must be exclusively
// owned and keeps its identity. On failure the reference is released and
// *slot cleared.
func (b *Bridge) Resize(slot **Handle, n int) error {
	if slot == nil {
		return badInternalCall()
	}
	h := *slot
	if h == nil || h.kind != objspace.KindBytes || h.Refcount() != 1 || n < 0 {
		if h != nil {
			b.Release(h)
		}
		*slot = nil
		return badInternalCall()
	}
	if err := b.checkSize(n); err != nil {
		b.Release(h)
		*slot = nil
		return err
	}

	b.mu.Lock()
	old := h.size
	h.setBuffer(h.buf[:old], n)
	if h.value != nil && b.byValue[h.value] == h {
		delete(b.byValue, h.value)
	}
	h.value = nil
	b.mu.Unlock()

	b.logger.TraceCat(objspace.CatMemory, "handle %d resized from %d to %d bytes", h.id, old, n)
	return nil
}

// Concat appends the bytes w to the handle in *slot. An exclusively owned
// bytes handle grows in place and keeps its identity; otherwise *slot is
// replaced by a new reference to the concatenation. A nil *slot is left
// alone. On failure the reference is released and *slot cleared.
func (b *Bridge) Concat(slot **Handle, w objspace.Value) error {
	if slot == nil || *slot == nil {
		return nil
	}
	h := *slot
	fail := func(err error) error {
		b.Release(h)
		*slot = nil
		return err
	}

	wb, ok := w.(*objspace.Bytes)
	if h.kind == objspace.KindBytes && h.Refcount() == 1 && ok {
		old := h.size
		if err := b.Resize(slot, old+wb.Len()); err != nil {
			return err
		}
		copy(h.buf[old:], wb.Bytes())
		return nil
	}

	if w == nil {
		return fail(badInternalCall())
	}
	res, err := b.space.Binary("add", b.FromRef(h), w)
	if err != nil {
		return fail(err)
	}
	if _, ok := res.(*objspace.Bytes); !ok {
		return fail(objspace.Errorf(objspace.TypeError, "can't concat %s to %s", w.TypeName(), h.kind))
	}
	b.Release(h)
	*slot = b.MakeRef(res)
	return nil
}

// ConcatAndDel is Concat followed by releasing w, which happens even when
// the concatenation fails or *slot is nil
func (b *Bridge) ConcatAndDel(slot **Handle, w *Handle) error {
	defer b.Release(w)
	if slot == nil || *slot == nil {
		return nil
	}
	return b.Concat(slot, b.FromRef(w))
}

// BytesEq reports whether a and b are equal bytes values
func BytesEq(a, b objspace.Value) bool {
	ab, ok := a.(*objspace.Bytes)
	if !ok {
		return false
	}
	bb, ok := b.(*objspace.Bytes)
	if !ok {
		return false
	}
	return bytes.Equal(ab.Bytes(), bb.Bytes())
}

// BytesJoin joins the bytes items of seq with sep
func (b *Bridge) BytesJoin(sep, seq objspace.Value) (objspace.Value, error) {
	if _, ok := sep.(*objspace.Bytes); !ok {
		return nil, objspace.Errorf(objspace.TypeError, "expected bytes separator, %s found", sep.TypeName())
	}
	return b.space.Call("join", sep, seq)
}

// BytesFromObject converts v to bytes. Bytes come back unchanged; lists and
// tuples of integers in range(0, 256) are packed.
func (b *Bridge) BytesFromObject(v objspace.Value) (objspace.Value, error) {
	var items []objspace.Value
	switch x := v.(type) {
	case *objspace.Bytes:
		return v, nil
	case *objspace.List:
		items = x.Items()
	case *objspace.Tuple:
		items = x.Items()
	default:
		return nil, objspace.Errorf(objspace.TypeError, "cannot convert '%s' object to bytes", v.TypeName())
	}
	out := make([]byte, len(items))
	for i, item := range items {
		idx, err := b.space.Call("index", item)
		if err != nil {
			return nil, err
		}
		n := idx.(*objspace.Int).Value()
		if n < 0 || n > 255 {
			return nil, objspace.Errorf(objspace.ValueError, "bytes must be in range(0, 256)")
		}
		out[i] = byte(n)
	}
	return objspace.NewBytes(out), nil
}
