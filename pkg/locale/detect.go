package locale

import (
	"os"
	"strings"

	golocale "github.com/jeandeaual/go-locale"
)

// Detect returns the process locale name and its codeset. The usual
// environment variables are consulted in POSIX precedence order; when none
// is set the platform's preferred language is used with a UTF-8 codeset.
func Detect() (name, codeset string) {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v, CodesetOf(v)
		}
	}
	if tag, err := golocale.GetLocale(); err == nil && tag != "" {
		return tag, "UTF-8"
	}
	return "C", "ANSI_X3.4-1968"
}

// CodesetOf extracts the codeset from a locale name of the form
// language[_territory][.codeset][@modifier]. "C" and "POSIX" are ASCII.
// A bare codeset such as "latin1" is returned unchanged; any other name
// without a codeset is taken as UTF-8.
func CodesetOf(name string) string {
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	switch name {
	case "", "C", "POSIX":
		return "ANSI_X3.4-1968"
	case "C.UTF-8", "C.utf8":
		return "UTF-8"
	}
	if dot := strings.IndexByte(name, '.'); dot >= 0 {
		return name[dot+1:]
	}
	if _, err := CodecFor(name); err == nil {
		return name
	}
	return "UTF-8"
}
