// Package ustr is the string algorithm engine of the object space. Every
// function operates on an immutable sequence of code points ([]rune) and
// returns a fresh sequence; inputs are never modified.
package ustr

import "math"

// MaxSize bounds every computed result length. It defaults to the platform
// limit and may be lowered at startup (before concurrent use) to make size
// overflow observable.
var MaxSize = math.MaxInt

// Builder is an append-only code point buffer. Build freezes it; any
// mutation afterwards is a programming error and panics.
type Builder struct {
	buf   []rune
	built bool
}

// NewBuilder creates a builder with room for hint code points
func NewBuilder(hint int) *Builder {
	if hint < 0 {
		hint = 0
	}
	return &Builder{buf: make([]rune, 0, hint)}
}

func (b *Builder) checkMutable() {
	if b.built {
		panic("ustr: Builder modified after Build")
	}
}

// Append adds a single code point
func (b *Builder) Append(r rune) {
	b.checkMutable()
	b.buf = append(b.buf, r)
}

// AppendSlice adds a sequence of code points
func (b *Builder) AppendSlice(rs []rune) {
	b.checkMutable()
	b.buf = append(b.buf, rs...)
}

// AppendRepeat adds r n times
func (b *Builder) AppendRepeat(r rune, n int) {
	b.checkMutable()
	for i := 0; i < n; i++ {
		b.buf = append(b.buf, r)
	}
}

// Len returns the number of code points appended so far
func (b *Builder) Len() int {
	return len(b.buf)
}

// Build returns the accumulated sequence. The builder cannot be used again.
func (b *Builder) Build() []rune {
	b.checkMutable()
	b.built = true
	out := b.buf
	b.buf = nil
	return out
}

// CheckedAdd returns a+b, or an OverflowError when the sum exceeds MaxSize
func CheckedAdd(op string, a, b int) (int, error) {
	if a < 0 || b < 0 || a > MaxSize-b {
		return 0, &OverflowError{Op: op, Size: saturatedAdd(a, b)}
	}
	return a + b, nil
}

// CheckedMul returns a*b, or an OverflowError when the product exceeds MaxSize
func CheckedMul(op string, a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, &OverflowError{Op: op}
	}
	if a != 0 && b > MaxSize/a {
		return 0, &OverflowError{Op: op, Size: math.MaxInt}
	}
	return a * b, nil
}

func saturatedAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
