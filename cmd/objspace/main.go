package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phroun/objspace"
	"golang.org/x/term"
)

var version = "dev" // set via -ldflags at build time

// ANSI color codes for terminal output
const (
	colorYellow = "\x1b[93m"
	colorReset  = "\x1b[0m"
)

// getConfigFilePath returns the path to ~/.objspace/config.toml
func getConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".objspace", "config.toml")
}

// loadConfig reads the config file, creating it with defaults on first run
func loadConfig(path string, explicit bool) (*objspace.Config, error) {
	if path == "" {
		return objspace.DefaultConfig(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return nil, err
		}
		config := objspace.DefaultConfig()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			_ = objspace.SaveConfig(path, config) // Ignore error - graceful failure
		}
		return config, nil
	}
	return objspace.LoadConfig(path)
}

// errorPrintf prints an error message to stderr, using color if supported
func errorPrintf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if objspace.StderrSupportsColor() {
		fmt.Fprintf(os.Stderr, "%s%s%s", colorYellow, message, colorReset)
	} else {
		fmt.Fprint(os.Stderr, message)
	}
}

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug output")
	flag.BoolVar(debugFlag, "d", false, "Enable debug output (short)")
	configFlag := flag.String("config", "", "Configuration file (TOML or YAML)")
	localeFlag := flag.String("locale", "", "Locale to use instead of the environment's")
	versionFlag := flag.Bool("version", false, "Show version and exit")
	flag.Usage = showUsage
	flag.Parse()

	if *versionFlag {
		fmt.Println("objspace", version)
		os.Exit(0)
	}

	path, explicit := *configFlag, *configFlag != ""
	if !explicit {
		path = getConfigFilePath()
	}
	config, err := loadConfig(path, explicit)
	if err != nil {
		errorPrintf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.ApplyEnv(); err != nil {
		errorPrintf("Error: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		config.Debug = true
	}
	if *localeFlag != "" {
		config.Locale = *localeFlag
	}
	if err := config.Validate(); err != nil {
		errorPrintf("Error: %v\n", err)
		os.Exit(1)
	}

	space := objspace.New(config)
	args := flag.Args()
	if len(args) == 0 {
		showUsage()
		os.Exit(2)
	}

	switch args[0] {
	case "call":
		if len(args) < 2 {
			errorPrintf("Usage: objspace call <op> [args...]\n")
			os.Exit(2)
		}
		out, err := runCall(space, args[1], args[2:])
		if err != nil {
			errorPrintf("%v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
	case "encode-locale":
		if len(args) != 2 {
			errorPrintf("Usage: objspace encode-locale <text>\n")
			os.Exit(2)
		}
		b, err := space.EncodeLocale(objspace.NewUnicodeString(args[1]), nil)
		if err != nil {
			errorPrintf("%v\n", err)
			os.Exit(1)
		}
		fmt.Println(hex.EncodeToString(b.Bytes()))
	case "decode-locale":
		if len(args) != 2 {
			errorPrintf("Usage: objspace decode-locale <hex>\n")
			os.Exit(2)
		}
		raw, err := hex.DecodeString(args[1])
		if err != nil {
			errorPrintf("Error: invalid hex input: %v\n", err)
			os.Exit(2)
		}
		u, err := space.DecodeLocale(objspace.NewBytes(raw), nil)
		if err != nil {
			errorPrintf("%v\n", err)
			os.Exit(1)
		}
		r, _ := space.Repr(u)
		fmt.Println(r)
	case "repl":
		if err := runREPL(space); err != nil {
			errorPrintf("%v\n", err)
			os.Exit(1)
		}
	default:
		errorPrintf("Unknown command: %s\n", args[0])
		showUsage()
		os.Exit(2)
	}
}

// runCall parses the literal operands and applies op, returning the repr
// of the result
func runCall(space *objspace.Space, op string, literals []string) (string, error) {
	operands := make([]objspace.Value, len(literals))
	for i, lit := range literals {
		v, err := parseLiteral(lit)
		if err != nil {
			return "", err
		}
		operands[i] = v
	}
	res, err := space.Call(op, operands...)
	if err != nil {
		return "", err
	}
	return space.Repr(res)
}

// runREPL reads "op arg..." lines until EOF. A terminal gets line editing
// and history; anything else is read line by line.
func runREPL(space *objspace.Space) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return replLoop(space, bufio.NewScanner(os.Stdin), os.Stdout)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, "objspace> ")
	if w, h, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(w, h)
	}
	fmt.Fprintf(t, "objspace %s, type \"help\" for usage, Ctrl-D to exit\r\n", version)
	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if !evalLine(space, line, t) {
			return nil
		}
	}
}

func replLoop(space *objspace.Space, sc *bufio.Scanner, out io.Writer) error {
	for sc.Scan() {
		if !evalLine(space, sc.Text(), out) {
			return nil
		}
	}
	return sc.Err()
}

// evalLine runs one REPL line and reports whether to continue
func evalLine(space *objspace.Space, line string, out io.Writer) bool {
	fields, err := splitFields(line)
	if err != nil {
		fmt.Fprintf(out, "error: %v\r\n", err)
		return true
	}
	if len(fields) == 0 {
		return true
	}
	switch fields[0] {
	case "exit", "quit":
		return false
	case "help":
		fmt.Fprintf(out, "op arg...   apply op to literal operands, e.g. center 'hi' 6 '*'\r\n")
		fmt.Fprintf(out, "ops         list operations\r\n")
		return true
	case "ops":
		fmt.Fprintf(out, "%s\r\n", strings.Join(space.Table().Ops(), " "))
		return true
	}
	res, err := runCall(space, fields[0], fields[1:])
	if err != nil {
		fmt.Fprintf(out, "%v\r\n", err)
		return true
	}
	fmt.Fprintf(out, "%s\r\n", res)
	return true
}

func showUsage() {
	usage := `Usage: objspace [options] <command> [args...]

Apply object space operations from the command line.

Options:
  -d, -debug          Enable debug output
  -config FILE        Configuration file (default ~/.objspace/config.toml)
  -locale NAME        Locale to use, e.g. de_DE.ISO-8859-15
  -version            Show version and exit

Commands:
  call OP ARGS...     Apply OP to literal operands and print the repr
  encode-locale TEXT  Encode TEXT with the locale codec, print hex
  decode-locale HEX   Decode HEX bytes with the locale codec, print the repr
  repl                Read operations interactively

Literals:
  'text' or text      str
  b'\xff'             bytes
  42, 1.5, True, None numbers, booleans and None
  [1, 'a'], {a: 1}    lists and dicts

Environment Variables:
  OBJSPACE_DEBUG      true/false, or a comma separated list of log categories
  OBJSPACE_LOCALE     Locale to use
`
	fmt.Fprint(os.Stderr, usage)
}
