// Package locale converts between code point sequences and the host's
// locale byte encoding. Host codecs escape undecodable bytes as lone low
// surrogates (U+DC80..U+DCFF) and turn those surrogates back into bytes, so
// arbitrary byte strings survive a decode/encode round trip.
package locale

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Codec is the pair of host conversion calls. Both directions work on
// complete inputs without a terminator; a failure is reported as a
// *HostError carrying the offending offset.
type Codec interface {
	Name() string
	BytesToWide(b []byte) ([]uint32, error)
	WideToBytes(w []uint32) ([]byte, error)
}

// HostError is a failed host conversion at offset Pos of its input
type HostError struct {
	Op    string
	Pos   int
	Errno error
}

func (e *HostError) Error() string {
	if e.Errno == nil {
		return e.Op + " failed"
	}
	return e.Errno.Error()
}

func (e *HostError) Unwrap() error { return e.Errno }

const (
	escapeLow  = 0xDC80
	escapeHigh = 0xDCFF
)

func escapeByte(b byte) uint32 { return 0xDC00 + uint32(b) }

func unescape(w uint32) (byte, bool) {
	if w >= escapeLow && w <= escapeHigh {
		return byte(w - 0xDC00), true
	}
	return 0, false
}

func encodeFailure(pos int) error {
	return &HostError{Op: "wchar2char", Pos: pos, Errno: errIllegalSequence}
}

type utf8Codec struct{}

func (utf8Codec) Name() string { return "UTF-8" }

func (utf8Codec) BytesToWide(b []byte) ([]uint32, error) {
	out := make([]uint32, 0, len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			out = append(out, escapeByte(b[i]))
			i++
			continue
		}
		out = append(out, uint32(r))
		i += size
	}
	return out, nil
}

func (utf8Codec) WideToBytes(w []uint32) ([]byte, error) {
	out := make([]byte, 0, len(w))
	for i, c := range w {
		if b, ok := unescape(c); ok {
			out = append(out, b)
			continue
		}
		if c > utf8.MaxRune || (c >= 0xD800 && c <= 0xDFFF) {
			return nil, encodeFailure(i)
		}
		out = utf8.AppendRune(out, rune(c))
	}
	return out, nil
}

type asciiCodec struct{}

func (asciiCodec) Name() string { return "ANSI_X3.4-1968" }

func (asciiCodec) BytesToWide(b []byte) ([]uint32, error) {
	out := make([]uint32, len(b))
	for i, c := range b {
		if c < 0x80 {
			out[i] = uint32(c)
		} else {
			out[i] = escapeByte(c)
		}
	}
	return out, nil
}

func (asciiCodec) WideToBytes(w []uint32) ([]byte, error) {
	out := make([]byte, len(w))
	for i, c := range w {
		switch b, ok := unescape(c); {
		case c < 0x80:
			out[i] = byte(c)
		case ok:
			out[i] = b
		default:
			return nil, encodeFailure(i)
		}
	}
	return out, nil
}

type charmapCodec struct {
	name string
	cm   *charmap.Charmap
}

func (c charmapCodec) Name() string { return c.name }

func (c charmapCodec) BytesToWide(b []byte) ([]uint32, error) {
	out := make([]uint32, len(b))
	for i, x := range b {
		r := c.cm.DecodeByte(x)
		if r == utf8.RuneError {
			out[i] = escapeByte(x)
		} else {
			out[i] = uint32(r)
		}
	}
	return out, nil
}

func (c charmapCodec) WideToBytes(w []uint32) ([]byte, error) {
	out := make([]byte, len(w))
	for i, x := range w {
		if b, ok := c.cm.EncodeRune(rune(x)); ok && x != utf8.RuneError {
			out[i] = b
			continue
		}
		if b, ok := unescape(x); ok {
			out[i] = b
			continue
		}
		return nil, encodeFailure(i)
	}
	return out, nil
}

// CodecFor returns the host codec for a codeset name such as "UTF-8",
// "ISO-8859-15" or "ANSI_X3.4-1968". Single-byte charsets are resolved
// through the IANA registry.
func CodecFor(codeset string) (Codec, error) {
	switch normalizeCodeset(codeset) {
	case "utf8":
		return utf8Codec{}, nil
	case "", "c", "posix", "ascii", "usascii", "ansix3.41968", "646":
		return asciiCodec{}, nil
	case "latin1", "l1", "iso88591":
		return charmapCodec{name: "ISO-8859-1", cm: charmap.ISO8859_1}, nil
	}

	enc, err := ianaindex.IANA.Encoding(codeset)
	if err != nil {
		return nil, fmt.Errorf("unknown codeset %q: %w", codeset, err)
	}
	name, _ := ianaindex.IANA.Name(enc)
	return codecForEncoding(codeset, name, enc)
}

func codecForEncoding(codeset, name string, enc encoding.Encoding) (Codec, error) {
	switch e := enc.(type) {
	case *charmap.Charmap:
		if name == "" {
			name = codeset
		}
		return charmapCodec{name: name, cm: e}, nil
	case nil:
		return nil, fmt.Errorf("codeset %q has no implementation", codeset)
	}
	if enc == unicode.UTF8 {
		return utf8Codec{}, nil
	}
	return nil, fmt.Errorf("codeset %q is not a single-byte or UTF-8 encoding", codeset)
}

func normalizeCodeset(codeset string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(codeset) {
		if c != '-' && c != '_' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
