// Package objspace is the object space of a dynamic language runtime. Every
// operation on a boxed Value goes through a Space, which resolves it against
// a frozen multiple-dispatch table and applies reflection and coercion
// fallbacks before reporting a TypeError.
package objspace

import (
	"errors"
	"strings"

	"github.com/phroun/objspace/pkg/locale"
	"github.com/phroun/objspace/pkg/ustr"
)

// Space mediates all operations on boxed values
type Space struct {
	config *Config
	logger *Logger
	table  *DispatchTable

	// tr is the space's own locale transcoder; nil means the process locale
	tr *locale.Transcoder
}

// New creates a space. Its locale, character widths and string size limit
// belong to the space alone; process-wide state is left untouched.
func New(config *Config) *Space {
	if config == nil {
		config = DefaultConfig()
	}
	logger := NewLogger(config.Debug)
	cats, err := ParseCategories(strings.Join(config.LogCategories, ","))
	if err != nil {
		logger.WarnCat(CatConfig, "%v", err)
	}
	for _, cat := range cats {
		logger.EnableCategory(cat)
	}

	if config.MaxStringSize > 0 {
		logger.DebugCat(CatConfig, "string size limit %d", config.MaxStringSize)
	}

	s := &Space{
		config: config,
		logger: logger,
		table:  DefaultDispatchTable(),
	}
	s.initLocale()
	return s
}

func (s *Space) initLocale() {
	name := s.config.Locale
	if name == "" {
		var codeset string
		name, codeset = locale.Detect()
		s.logger.DebugCat(CatLocale, "detected locale %q (codeset %s)", name, codeset)
	}
	tr, err := locale.NewTranscoder(name, s.config.ScalarWidth, s.config.WcharWidth)
	if err != nil {
		s.logger.WarnCat(CatLocale, "cannot use locale %q: %v; using the process locale", name, err)
		return
	}
	s.tr = tr
	s.logger.DebugCat(CatLocale, "locale %q uses codec %s", name, tr.Codec.Name())
}

// transcoder returns the space's locale transcoder
func (s *Space) transcoder() *locale.Transcoder {
	if s.tr != nil {
		return s.tr
	}
	_, tr := locale.Current()
	return tr
}

// maxStringSize is the configured bound on computed sequence lengths, or 0
func (s *Space) maxStringSize() int {
	if s.config == nil {
		return 0
	}
	return s.config.MaxStringSize
}

// checkResultSize rejects a freshly computed sequence longer than the
// space's size limit. Operands handed back unchanged are not checked.
func (s *Space) checkResultSize(op string, res Value, args []Value) error {
	limit := s.maxStringSize()
	if limit <= 0 || res == nil {
		return nil
	}
	var n int
	switch x := res.(type) {
	case *Unicode:
		n = len(x.runes)
	case *Bytes:
		n = len(x.b)
	case *List:
		n = len(x.items)
	case *Tuple:
		n = len(x.items)
	default:
		return nil
	}
	if n <= limit {
		return nil
	}
	for _, a := range args {
		if a == res {
			return nil
		}
	}
	return &ustr.OverflowError{Op: op, Size: n}
}

// Logger returns the space's logger
func (s *Space) Logger() *Logger { return s.logger }

// Config returns the configuration the space was created with
func (s *Space) Config() *Config { return s.config }

// Table returns the dispatch table
func (s *Space) Table() *DispatchTable { return s.table }

// wrapError converts engine errors into OperationErrors. OperationErrors
// and nil pass through; the dispatch miss signal never leaves the space.
func (s *Space) wrapError(err error) error {
	if err == nil {
		return nil
	}
	var oe *OperationError
	if errors.As(err, &oe) {
		return err
	}

	var (
		ovf   *ustr.OverflowError
		fill  *ustr.FillCharError
		mapE  *ustr.MappingError
		encE  *locale.EncodeError
		decE  *locale.DecodeError
		hostE *locale.HostError
	)
	wrapped := func(t ExcType) error {
		return &OperationError{Type: t, Message: err.Error(), Err: err}
	}
	switch {
	case errors.Is(err, ErrNotImplemented):
		return newError(SystemError, "unresolved dispatch signal")
	case errors.Is(err, ustr.ErrEmptySeparator), errors.Is(err, ustr.ErrSubstringNotFound):
		return wrapped(ValueError)
	case errors.As(err, &ovf):
		s.logger.DebugCat(CatString, "%s result size %d exceeds limit %d", ovf.Op, ovf.Size, s.maxStringSize())
		return wrapped(OverflowError)
	case errors.As(err, &fill):
		return wrapped(TypeError)
	case errors.As(err, &mapE):
		if strings.Contains(mapE.Reason, "range") {
			return wrapped(ValueError)
		}
		return wrapped(TypeError)
	case errors.Is(err, locale.ErrNoMemory):
		return wrapped(MemoryError)
	case errors.As(err, &encE):
		return wrapped(UnicodeEncodeError)
	case errors.As(err, &decE):
		return wrapped(UnicodeDecodeError)
	case errors.As(err, &hostE):
		return wrapped(ValueError)
	}
	s.logger.ErrorCat(CatDispatch, "unexpected engine error: %v", err)
	return wrapped(SystemError)
}

// EncodeLocale encodes u with the space's locale and the surrogateescape
// policy. handler may be nil for strict failures.
func (s *Space) EncodeLocale(u *Unicode, handler locale.EncodeErrorHandler) (*Bytes, error) {
	b, err := s.transcoder().Encode(u.runes, handler)
	if err != nil {
		s.logger.DebugCat(CatLocale, "encode failed: %v", err)
		return nil, s.wrapError(err)
	}
	return NewBytes(b), nil
}

// DecodeLocale decodes b with the space's locale and the surrogateescape
// policy
func (s *Space) DecodeLocale(b *Bytes, handler locale.DecodeErrorHandler) (*Unicode, error) {
	u, err := s.transcoder().Decode(b.b, handler)
	if err != nil {
		s.logger.DebugCat(CatLocale, "decode failed: %v", err)
		return nil, s.wrapError(err)
	}
	return NewUnicode(u), nil
}
