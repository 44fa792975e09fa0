package objspace

import (
	"errors"
	"fmt"
)

// ExcType identifies the user-visible class of an OperationError
type ExcType int

const (
	TypeError ExcType = iota
	ValueError
	IndexError
	KeyError
	LookupError
	OverflowError
	MemoryError
	UnicodeEncodeError
	UnicodeDecodeError
	ZeroDivisionError
	SystemError
)

// String returns the exception class name
func (t ExcType) String() string {
	switch t {
	case TypeError:
		return "TypeError"
	case ValueError:
		return "ValueError"
	case IndexError:
		return "IndexError"
	case KeyError:
		return "KeyError"
	case LookupError:
		return "LookupError"
	case OverflowError:
		return "OverflowError"
	case MemoryError:
		return "MemoryError"
	case UnicodeEncodeError:
		return "UnicodeEncodeError"
	case UnicodeDecodeError:
		return "UnicodeDecodeError"
	case ZeroDivisionError:
		return "ZeroDivisionError"
	case SystemError:
		return "SystemError"
	default:
		return "Exception"
	}
}

// parent returns the base class of t, or t itself for roots
func (t ExcType) parent() ExcType {
	switch t {
	case IndexError, KeyError:
		return LookupError
	case UnicodeEncodeError, UnicodeDecodeError:
		return ValueError
	default:
		return t
	}
}

// ErrNotImplemented is the dispatch miss signal. Implementations return it
// to decline an operand combination; it never leaves the Space.
var ErrNotImplemented = errors.New("not implemented")

// OperationError is an error surfaced to callers of the space
type OperationError struct {
	Type    ExcType
	Message string
	Err     error // underlying engine error, if any
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match on the exception class, honouring the hierarchy
func (e *OperationError) Is(target error) bool {
	t, ok := target.(*OperationError)
	if !ok || t.Message != "" {
		return false
	}
	return e.Type.Matches(t.Type)
}

// Matches reports whether t is cls or a subclass of it
func (t ExcType) Matches(cls ExcType) bool {
	for {
		if t == cls {
			return true
		}
		p := t.parent()
		if p == t {
			return false
		}
		t = p
	}
}

// Class returns a message-less error usable as an errors.Is target
func Class(t ExcType) error {
	return &OperationError{Type: t}
}

// Match reports whether err is an OperationError of class t or a subclass
func Match(err error, t ExcType) bool {
	var oe *OperationError
	if !errors.As(err, &oe) {
		return false
	}
	return oe.Type.Matches(t)
}

func newError(t ExcType, format string, args ...interface{}) *OperationError {
	return &OperationError{Type: t, Message: fmt.Sprintf(format, args...)}
}

// Errorf builds an OperationError of class t for code outside the space
// that reports errors in the same shape
func Errorf(t ExcType, format string, args ...interface{}) *OperationError {
	return newError(t, format, args...)
}
