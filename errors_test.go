package objspace

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phroun/objspace/pkg/locale"
	"github.com/phroun/objspace/pkg/ustr"
)

func TestExceptionHierarchy(t *testing.T) {
	assert.True(t, KeyError.Matches(LookupError))
	assert.True(t, IndexError.Matches(LookupError))
	assert.True(t, UnicodeDecodeError.Matches(ValueError))
	assert.False(t, ValueError.Matches(UnicodeDecodeError))
	assert.False(t, TypeError.Matches(ValueError))

	err := fmt.Errorf("wrapped: %w", newError(KeyError, "'k'"))
	assert.True(t, Match(err, LookupError))
	assert.True(t, errors.Is(err, Class(KeyError)))
	assert.True(t, errors.Is(err, Class(LookupError)))
	assert.False(t, errors.Is(err, Class(TypeError)))
	assert.False(t, Match(errors.New("plain"), TypeError))
}

func TestWrapError(t *testing.T) {
	s := newTestSpace(t)
	cases := []struct {
		name string
		err  error
		want ExcType
	}{
		{"empty separator", ustr.ErrEmptySeparator, ValueError},
		{"not found", ustr.ErrSubstringNotFound, ValueError},
		{"overflow", &ustr.OverflowError{Op: "join"}, OverflowError},
		{"fill char", &ustr.FillCharError{Length: 2}, TypeError},
		{"mapping range", &ustr.MappingError{Reason: "must be in range(0x110000)"}, ValueError},
		{"mapping type", &ustr.MappingError{Reason: "must return integer, None or str"}, TypeError},
		{"no memory", locale.ErrNoMemory, MemoryError},
		{"encode", &locale.EncodeError{Encoding: "x", Object: []rune("a"), End: 1, Reason: "r"}, UnicodeEncodeError},
		{"decode", &locale.DecodeError{Encoding: "x", Object: []byte("a"), End: 1, Reason: "r"}, UnicodeDecodeError},
		{"host", &locale.HostError{Op: "mbstowcs"}, ValueError},
		{"unknown", errors.New("boom"), SystemError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := s.wrapError(c.err)
			var oe *OperationError
			require.ErrorAs(t, err, &oe)
			assert.Equal(t, c.want, oe.Type)
			if c.want != SystemError {
				assert.ErrorIs(t, err, c.err)
			}
		})
	}

	assert.NoError(t, s.wrapError(nil))
	oe := newError(IndexError, "x")
	assert.Same(t, oe, s.wrapError(oe))
	assert.False(t, errors.Is(s.wrapError(ErrNotImplemented), ErrNotImplemented))
}
