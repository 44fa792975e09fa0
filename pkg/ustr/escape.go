package ustr

import (
	"fmt"

	"github.com/phroun/objspace/pkg/unicodedb"
)

// EscapeOptions controls Escape
type EscapeOptions struct {
	PassPrintable bool   // emit printable non-ASCII code points literally
	Quotes        bool   // wrap the result in quotes and escape the quote character
	Prefix        string // written before the opening quote, e.g. "b"
}

// Escape renders s as source text: printable code points literally (ASCII
// always, others only with PassPrintable) and everything else as a
// backslash escape. With Quotes, single quotes are used unless s contains a
// single quote and no double quote.
func Escape(s []rune, opts EscapeOptions) string {
	b := NewBuilder(len(s) + 2)
	quote := '\''
	if opts.Quotes {
		b.AppendSlice([]rune(opts.Prefix))
		if Find(s, []rune{'\''}, 0, len(s)) >= 0 && Find(s, []rune{'"'}, 0, len(s)) < 0 {
			quote = '"'
		}
		b.Append(quote)
	}

	hex := func(format string, r rune) {
		b.AppendSlice([]rune(fmt.Sprintf(format, r)))
	}
	for _, r := range s {
		switch {
		case opts.Quotes && (r == quote || r == '\\'):
			b.Append('\\')
			b.Append(r)
		case !opts.Quotes && r == '\\':
			b.AppendSlice([]rune{'\\', '\\'})
		case opts.PassPrintable && r >= 0x7F && unicodedb.IsPrintable(r):
			b.Append(r)
		case r >= 0x10000:
			hex(`\U%08x`, r)
		case r >= 0x100:
			hex(`\u%04x`, r)
		case r == '\t':
			b.AppendSlice([]rune{'\\', 't'})
		case r == '\n':
			b.AppendSlice([]rune{'\\', 'n'})
		case r == '\r':
			b.AppendSlice([]rune{'\\', 'r'})
		case r < ' ' || r >= 0x7F:
			hex(`\x%02x`, r)
		default:
			b.Append(r)
		}
	}
	if opts.Quotes {
		b.Append(quote)
	}
	return string(b.Build())
}
