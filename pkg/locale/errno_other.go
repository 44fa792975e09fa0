//go:build !unix

package locale

import "errors"

var (
	errIllegalSequence = errors.New("invalid or incomplete multibyte or wide character")
	errOutOfMemory     = errors.New("cannot allocate memory")
)
