package locale

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// Encoding is the codec name reported in transcoding errors
const Encoding = "filesystemencoding"

// ErrNoMemory reports a conversion buffer that cannot be sized or allocated
var ErrNoMemory = errors.New("out of memory")

// MaxBufferSize bounds the byte size of a host conversion buffer
var MaxBufferSize = math.MaxInt

// EncodeError is raised by the default handler when a code point cannot be
// represented in the locale encoding
type EncodeError struct {
	Encoding   string
	Object     []rune
	Start, End int
	Reason     string
}

func (e *EncodeError) Error() string {
	c := e.Object[e.Start]
	var repr string
	switch {
	case c < 0x100:
		repr = fmt.Sprintf(`\x%02x`, c)
	case c < 0x10000:
		repr = fmt.Sprintf(`\u%04x`, c)
	default:
		repr = fmt.Sprintf(`\U%08x`, c)
	}
	return fmt.Sprintf("'%s' codec can't encode character '%s' in position %d: %s",
		e.Encoding, repr, e.Start, e.Reason)
}

// DecodeError is raised by the default handler when the host decoder fails
type DecodeError struct {
	Encoding   string
	Object     []byte
	Start, End int
	Reason     string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("'%s' codec can't decode byte 0x%02x in position %d: %s",
		e.Encoding, e.Object[e.Start], e.Start, e.Reason)
}

// EncodeErrorHandler is consulted when encoding fails on u[start:end]. It
// returns the bytes to emit instead and the position to resume at, or an
// error to abort.
type EncodeErrorHandler func(errors, encoding, reason string, u []rune, start, end int) ([]byte, int, error)

// DecodeErrorHandler is the decoding counterpart of EncodeErrorHandler
type DecodeErrorHandler func(errors, encoding, reason string, s []byte, start, end int) ([]rune, int, error)

// StrictEncode is the default encode handler
func StrictEncode(_, encoding, reason string, u []rune, start, end int) ([]byte, int, error) {
	return nil, 0, &EncodeError{Encoding: encoding, Object: u, Start: start, End: end, Reason: reason}
}

// StrictDecode is the default decode handler
func StrictDecode(_, encoding, reason string, s []byte, start, end int) ([]rune, int, error) {
	return nil, 0, &DecodeError{Encoding: encoding, Object: s, Start: start, End: end, Reason: reason}
}

// Transcoder binds a host codec to the width of the scalar unit (2 on
// builds that store supplementary characters as surrogate pairs) and of the
// host wide character. When ScalarWidth is 2 and WcharWidth is 4, surrogate
// pairs are merged before encoding and supplementary characters are split
// after decoding.
type Transcoder struct {
	Codec       Codec
	ScalarWidth int
	WcharWidth  int
}

func (t *Transcoder) mergeSurrogates() bool {
	return t.ScalarWidth == 2 && t.WcharWidth == 4
}

func (t *Transcoder) wcharWidth() int {
	if t.WcharWidth <= 0 {
		return 4
	}
	return t.WcharWidth
}

// bufferFits reports whether n units of the given width plus a terminator
// can be allocated
func bufferFits(n, width int) bool {
	return n < MaxBufferSize/width
}

// toWide converts u into host wide characters and returns, for each of
// them, the index in u it came from
func (t *Transcoder) toWide(u []rune) ([]uint32, []int, error) {
	if !bufferFits(len(u), t.wcharWidth()) {
		return nil, nil, ErrNoMemory
	}
	merge := t.mergeSurrogates()
	wide := make([]uint32, 0, len(u))
	origin := make([]int, 0, len(u))
	for i := 0; i < len(u); i++ {
		c := uint32(u[i])
		if merge && c >= 0xD800 && c <= 0xDBFF && i+1 < len(u) &&
			u[i+1] >= 0xDC00 && u[i+1] <= 0xDFFF {
			merged := ((c&0x03FF)<<10 | uint32(u[i+1])&0x03FF) + 0x10000
			wide = append(wide, merged)
			origin = append(origin, i)
			i++
			continue
		}
		wide = append(wide, c)
		origin = append(origin, i)
	}
	return wide, origin, nil
}

func (t *Transcoder) fromWide(w []uint32) []rune {
	out := make([]rune, 0, len(w))
	for _, c := range w {
		if c == 0 {
			break
		}
		if t.ScalarWidth == 2 && c >= 0x10000 && c <= 0x10FFFF {
			c -= 0x10000
			out = append(out, rune(0xD800|c>>10), rune(0xDC00|c&0x3FF))
			continue
		}
		out = append(out, rune(c))
	}
	return out
}

func reasonOf(err error, op string) string {
	var he *HostError
	if errors.As(err, &he) {
		return he.Error()
	}
	return op + " failed"
}

// encode is Encode without the locale lock
func (t *Transcoder) encode(u []rune, handler EncodeErrorHandler) ([]byte, error) {
	if handler == nil {
		handler = StrictEncode
	}
	u = cutRunes(u)
	out := []byte{}
	for pos := 0; pos < len(u); {
		wide, origin, err := t.toWide(u[pos:])
		if err != nil {
			return nil, err
		}
		b, err := t.Codec.WideToBytes(wide)
		if err == nil {
			return append(out, b...), nil
		}
		var he *HostError
		if errors.As(err, &he) && errors.Is(he.Errno, errOutOfMemory) {
			return nil, ErrNoMemory
		}
		if he == nil || he.Pos < 0 || he.Pos >= len(wide) {
			return nil, err
		}
		if he.Pos > 0 {
			prefix, perr := t.Codec.WideToBytes(wide[:he.Pos])
			if perr != nil {
				return nil, perr
			}
			out = append(out, prefix...)
		}

		start := pos + origin[he.Pos]
		rep, next, herr := handler("strict", Encoding, reasonOf(err, "wchar2char"), u, start, start+1)
		if herr != nil {
			return nil, herr
		}
		if next, err = resumeAt(next, start, len(u)); err != nil {
			return nil, err
		}
		out = append(out, rep...)
		pos = next
	}
	return out, nil
}

// decode is Decode without the locale lock
func (t *Transcoder) decode(s []byte, handler DecodeErrorHandler) ([]rune, error) {
	if handler == nil {
		handler = StrictDecode
	}
	s = cutBytes(s)
	if !bufferFits(len(s), t.wcharWidth()) {
		return nil, ErrNoMemory
	}
	out := []rune{}
	for pos := 0; pos < len(s); {
		wide, err := t.Codec.BytesToWide(s[pos:])
		if err == nil {
			return append(out, t.fromWide(wide)...), nil
		}
		var he *HostError
		if errors.As(err, &he) && errors.Is(he.Errno, errOutOfMemory) {
			return nil, ErrNoMemory
		}
		if he == nil || he.Pos < 0 || pos+he.Pos >= len(s) {
			return nil, err
		}
		if he.Pos > 0 {
			prefix, perr := t.Codec.BytesToWide(s[pos : pos+he.Pos])
			if perr != nil {
				return nil, perr
			}
			out = append(out, t.fromWide(prefix)...)
		}

		start := pos + he.Pos
		rep, next, herr := handler("strict", Encoding, reasonOf(err, "char2wchar"), s, start, start+1)
		if herr != nil {
			return nil, herr
		}
		if next, err = resumeAt(next, start, len(s)); err != nil {
			return nil, err
		}
		out = append(out, rep...)
		pos = next
	}
	return out, nil
}

// resumeAt validates a handler's resume position; negative positions count
// from the end and the position must move past the failure
func resumeAt(next, start, length int) (int, error) {
	if next < 0 {
		next += length
	}
	if next <= start || next > length {
		return 0, fmt.Errorf("position %d from error handler out of range", next)
	}
	return next, nil
}

func cutRunes(u []rune) []rune {
	for i, c := range u {
		if c == 0 {
			return u[:i]
		}
	}
	return u
}

func cutBytes(s []byte) []byte {
	for i, c := range s {
		if c == 0 {
			return s[:i]
		}
	}
	return s
}

// Encode converts u to locale bytes. The input ends at its first NUL.
func (t *Transcoder) Encode(u []rune, handler EncodeErrorHandler) ([]byte, error) {
	mu.RLock()
	defer mu.RUnlock()
	return t.encode(u, handler)
}

// Decode converts locale bytes to code points. The input ends at its first NUL.
func (t *Transcoder) Decode(s []byte, handler DecodeErrorHandler) ([]rune, error) {
	mu.RLock()
	defer mu.RUnlock()
	return t.decode(s, handler)
}

// Process-wide locale state. Transcoding holds the read lock, so a locale
// switch never overlaps a conversion.
var (
	mu      sync.RWMutex
	current    = &Transcoder{Codec: utf8Codec{}, ScalarWidth: 4, WcharWidth: 4}
	localeName = "C.UTF-8"
)

// SetLocale switches the process locale. name may be a full locale name
// ("de_DE.ISO-8859-15") or a bare codeset.
func SetLocale(locale string) (Codec, error) {
	codec, err := CodecFor(CodesetOf(locale))
	if err != nil {
		return nil, err
	}
	mu.Lock()
	defer mu.Unlock()
	current = &Transcoder{Codec: codec, ScalarWidth: current.ScalarWidth, WcharWidth: current.WcharWidth}
	localeName = locale
	return codec, nil
}

func checkWidths(scalarWidth, wcharWidth int) error {
	for _, w := range []int{scalarWidth, wcharWidth} {
		if w != 2 && w != 4 {
			return fmt.Errorf("unsupported character width %d", w)
		}
	}
	return nil
}

// NewTranscoder returns a transcoder for a locale name or bare codeset
// without touching the process locale
func NewTranscoder(locale string, scalarWidth, wcharWidth int) (*Transcoder, error) {
	if err := checkWidths(scalarWidth, wcharWidth); err != nil {
		return nil, err
	}
	codec, err := CodecFor(CodesetOf(locale))
	if err != nil {
		return nil, err
	}
	return &Transcoder{Codec: codec, ScalarWidth: scalarWidth, WcharWidth: wcharWidth}, nil
}

// SetWidths changes the scalar and wide character widths of the process
// transcoder. Widths must be 2 or 4.
func SetWidths(scalarWidth, wcharWidth int) error {
	if err := checkWidths(scalarWidth, wcharWidth); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	current = &Transcoder{Codec: current.Codec, ScalarWidth: scalarWidth, WcharWidth: wcharWidth}
	return nil
}

// Current returns the process locale name and its transcoder
func Current() (string, *Transcoder) {
	mu.RLock()
	defer mu.RUnlock()
	return localeName, current
}

// EncodeSurrogateEscape encodes u with the process locale. Lone surrogates
// U+DC80..U+DCFF become the bytes they escape; handler (StrictEncode when
// nil) is only consulted for code points the locale cannot represent.
func EncodeSurrogateEscape(u []rune, handler EncodeErrorHandler) ([]byte, error) {
	mu.RLock()
	defer mu.RUnlock()
	return current.encode(u, handler)
}

// DecodeSurrogateEscape decodes s with the process locale. Undecodable
// bytes become U+DC80..U+DCFF; handler (StrictDecode when nil) is only
// consulted when the host decoder itself fails.
func DecodeSurrogateEscape(s []byte, handler DecodeErrorHandler) ([]rune, error) {
	mu.RLock()
	defer mu.RUnlock()
	return current.decode(s, handler)
}
