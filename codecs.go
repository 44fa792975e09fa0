package objspace

import (
	"strings"

	"github.com/phroun/objspace/pkg/locale"
)

// isEscape reports whether r is a surrogateescape code point
func isEscape(r rune) bool {
	return r >= 0xDC80 && r <= 0xDCFF
}

func checkErrorMode(mode string) error {
	switch mode {
	case "strict", "surrogateescape", "replace", "ignore":
		return nil
	}
	return newError(LookupError, "unknown error handler name '%s'", mode)
}

// transcoderFor returns the transcoder for an encoding name. "locale" is the
// space's locale; everything else is resolved as a codeset.
func (s *Space) transcoderFor(encoding string) (*locale.Transcoder, string, error) {
	if strings.EqualFold(encoding, "locale") {
		return s.transcoder(), "locale", nil
	}
	codec, err := locale.CodecFor(encoding)
	if err != nil {
		return nil, "", newError(LookupError, "unknown encoding: %s", encoding)
	}
	return &locale.Transcoder{Codec: codec, ScalarWidth: 4, WcharWidth: 4}, strings.ToLower(encoding), nil
}

// splitNul cuts s at every NUL so that C-string transcoders see each piece
func splitNul[T rune | byte](s []T) [][]T {
	var parts [][]T
	start := 0
	for i, c := range s {
		if c == 0 {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// encodeText encodes u with an encoding and error mode. NUL code points are
// carried through as zero bytes.
func (s *Space) encodeText(u *Unicode, encoding, mode string) (*Bytes, error) {
	if err := checkErrorMode(mode); err != nil {
		return nil, err
	}
	tr, name, err := s.transcoderFor(encoding)
	if err != nil {
		return nil, err
	}
	runes := u.runes
	if name != "locale" && mode != "surrogateescape" {
		runes, err = s.resolveEscapes(u.runes, name, mode)
		if err != nil {
			return nil, err
		}
	}

	var out []byte
	offset := 0
	for i, piece := range splitNul(runes) {
		if i > 0 {
			out = append(out, 0)
		}
		base := offset
		handler := func(_, _, reason string, p []rune, start, end int) ([]byte, int, error) {
			switch mode {
			case "replace":
				return []byte{'?'}, end, nil
			case "ignore":
				return nil, end, nil
			}
			return nil, 0, &locale.EncodeError{
				Encoding: name, Object: u.runes, Start: base + start, End: base + end, Reason: reason,
			}
		}
		b, err := tr.Encode(piece, handler)
		if err != nil {
			return nil, s.wrapError(err)
		}
		out = append(out, b...)
		offset += len(piece) + 1
	}
	s.logger.TraceCat(CatString, "encoded %d code points to %d bytes with %s/%s", len(u.runes), len(out), name, mode)
	return NewBytes(out), nil
}

// resolveEscapes applies mode to the surrogateescape code points in rs,
// which only the locale codec turns back into raw bytes
func (s *Space) resolveEscapes(rs []rune, name, mode string) ([]rune, error) {
	var out []rune
	for i, r := range rs {
		if !isEscape(r) {
			if out != nil {
				out = append(out, r)
			}
			continue
		}
		switch mode {
		case "replace":
			if out == nil {
				out = append(make([]rune, 0, len(rs)), rs[:i]...)
			}
			out = append(out, '?')
		case "ignore":
			if out == nil {
				out = append(make([]rune, 0, len(rs)), rs[:i]...)
			}
		default:
			return nil, s.wrapError(&locale.EncodeError{
				Encoding: name, Object: rs, Start: i, End: i + 1, Reason: "surrogates not allowed",
			})
		}
	}
	if out == nil {
		return rs, nil
	}
	return out, nil
}

// decodeText decodes b with an encoding and error mode. Undecodable bytes
// are escaped by the codec and then resolved according to mode.
func (s *Space) decodeText(b *Bytes, encoding, mode string) (*Unicode, error) {
	if err := checkErrorMode(mode); err != nil {
		return nil, err
	}
	tr, name, err := s.transcoderFor(encoding)
	if err != nil {
		return nil, err
	}

	var out []rune
	offset := 0
	for i, piece := range splitNul(b.b) {
		if i > 0 {
			out = append(out, 0)
		}
		u, err := tr.Decode(piece, nil)
		if err != nil {
			return nil, s.wrapError(err)
		}
		pos := offset
		for _, r := range u {
			if !isEscape(r) || mode == "surrogateescape" {
				out = append(out, r)
				pos += encodedWidth(tr, r)
				continue
			}
			switch mode {
			case "replace":
				out = append(out, 0xFFFD)
			case "ignore":
			default:
				return nil, s.wrapError(&locale.DecodeError{
					Encoding: name, Object: b.b, Start: pos, End: pos + 1, Reason: "invalid start byte",
				})
			}
			pos++
		}
		offset += len(piece) + 1
	}
	return NewUnicode(out), nil
}

// encodedWidth is the number of bytes r occupies in the codec's encoding
func encodedWidth(tr *locale.Transcoder, r rune) int {
	b, err := tr.Codec.WideToBytes([]uint32{uint32(r)})
	if err != nil || len(b) == 0 {
		return 1
	}
	return len(b)
}
