package ustr

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySeparator    = errors.New("empty separator")
	ErrSubstringNotFound = errors.New("substring not found")
)

// OverflowError reports a result size that cannot be represented
type OverflowError struct {
	Op   string // replace, join, expandtabs, ...
	Size int    // attempted size, saturated at math.MaxInt
}

func (e *OverflowError) Error() string {
	switch e.Op {
	case "replace":
		return "replace string is too long"
	case "join":
		return "join() result is too long"
	default:
		return "new string is too long"
	}
}

// FillCharError reports a fill character argument of the wrong length
type FillCharError struct {
	Length int
}

func (e *FillCharError) Error() string {
	return "The fill character must be exactly one character long"
}

// MappingError reports an invalid value returned by a translate lookup
type MappingError struct {
	Codepoint rune
	Reason    string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("character mapping %s", e.Reason)
}
