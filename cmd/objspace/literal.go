package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phroun/objspace"
	"gopkg.in/yaml.v3"
)

// parseLiteral turns a command line operand into a value. Quoted text with
// an optional b prefix takes Go escapes; everything else is read as YAML.
func parseLiteral(lit string) (objspace.Value, error) {
	switch lit {
	case "None":
		return objspace.None, nil
	case "True":
		return objspace.True, nil
	case "False":
		return objspace.False, nil
	}

	isBytes := false
	body := lit
	if len(body) >= 3 && body[0] == 'b' && (body[1] == '\'' || body[1] == '"') {
		isBytes = true
		body = body[1:]
	}
	if len(body) >= 2 && (body[0] == '\'' || body[0] == '"') && body[len(body)-1] == body[0] {
		text, err := unescape(body[1 : len(body)-1])
		if err != nil {
			return nil, fmt.Errorf("bad literal %s: %w", lit, err)
		}
		if isBytes {
			return objspace.NewBytes([]byte(text)), nil
		}
		return objspace.NewUnicodeString(text), nil
	}
	if isBytes {
		return nil, fmt.Errorf("bad literal %s: unterminated bytes", lit)
	}

	var x interface{}
	if err := yaml.Unmarshal([]byte(lit), &x); err != nil {
		return nil, fmt.Errorf("bad literal %s: %w", lit, err)
	}
	return objspace.Wrap(x)
}

func unescape(body string) (string, error) {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			b.WriteByte(c)
			b.WriteByte(body[i+1])
			i++
		case c == '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return strconv.Unquote(b.String())
}

// splitFields splits a REPL line on blanks outside quotes and brackets
func splitFields(line string) ([]string, error) {
	var (
		fields []string
		cur    strings.Builder
		quote  byte
		depth  int
	)
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				i++
				cur.WriteByte(line[i])
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
			cur.WriteByte(c)
		case c == '[' || c == '{':
			depth++
			cur.WriteByte(c)
		case c == ']' || c == '}':
			depth--
			cur.WriteByte(c)
		case (c == ' ' || c == '\t') && depth == 0:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote")
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced brackets")
	}
	flush()
	return fields, nil
}
