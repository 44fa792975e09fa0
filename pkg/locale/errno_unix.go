//go:build unix

package locale

import "golang.org/x/sys/unix"

var (
	errIllegalSequence error = unix.EILSEQ
	errOutOfMemory     error = unix.ENOMEM
)
