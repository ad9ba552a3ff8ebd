package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rickchristie/wphook"
	"github.com/rickchristie/wphook/manifest"
	lua "github.com/yuin/gopher-lua"
)

const helpText = `Commands:
  apply <hook> <value> [args...]              run filters and print the result
  do <hook> [args...]                         run actions
  add <action|filter> <hook> <callback> [args...] [@tag]
                                              register a catalog callback
  remove <action|filter> <hook> [tag]         remove by tag, or all without one
  callbacks                                   list catalog callbacks
  lua <code>                                  run Lua (addFilter, applyFilters, ...)
  help                                        show this help
  quit                                        exit

Values are parsed as int, float, bool or nil; anything else, or anything
in double quotes, is a string.`

var errQuit = errors.New("quit")

type shell struct {
	registry *wphook.Registry
	catalog  *manifest.Catalog
	L        *lua.LState
	out      io.Writer
}

func newShell(r *wphook.Registry, L *lua.LState, out io.Writer) *shell {
	return &shell{
		registry: r,
		catalog:  manifest.Builtins(out),
		L:        L,
		out:      out,
	}
}

// loop reads commands until quit, EOF or an interrupt on an empty line.
func (s *shell) loop(rl *readline.Instance) error {
	fmt.Fprintln(s.out, `Type "help" for commands.`)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if err := s.exec(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// exec runs a single command line.
func (s *shell) exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	cmd, rest, _ := strings.Cut(line, " ")
	if cmd == "lua" {
		return s.lua(rest)
	}

	tokens, err := tokenize(rest)
	if err != nil {
		return err
	}

	switch cmd {
	case "apply":
		return s.apply(tokens)
	case "do":
		return s.do(tokens)
	case "add":
		return s.add(tokens)
	case "remove":
		return s.remove(tokens)
	case "callbacks":
		fmt.Fprintf(s.out, "actions: %s\n", strings.Join(s.catalog.Names(wphook.Action), ", "))
		fmt.Fprintf(s.out, "filters: %s\n", strings.Join(s.catalog.Names(wphook.Filter), ", "))
		return nil
	case "help":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// apply <hook> <value> [args...]
func (s *shell) apply(tokens []token) error {
	if len(tokens) < 2 {
		return errors.New("usage: apply <hook> <value> [args...]")
	}
	var result any
	err := dispatch(func() {
		result = s.registry.ApplyFiltersArgs(tokens[0].text, tokens[1].value(), values(tokens[2:]))
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, format(result))
	return nil
}

// do <hook> [args...]
func (s *shell) do(tokens []token) error {
	if len(tokens) < 1 {
		return errors.New("usage: do <hook> [args...]")
	}
	return dispatch(func() {
		s.registry.DoActionArgs(tokens[0].text, values(tokens[1:]))
	})
}

// dispatch runs fn and turns a callback panic, such as a Lua error, into an
// error so the shell keeps running.
func dispatch(fn func()) (err error) {
	defer func() {
		rcv := recover()
		if rcv == nil {
			return
		}
		if e, ok := rcv.(error); ok {
			err = fmt.Errorf("callback failed: %w", e)
			return
		}
		err = fmt.Errorf("callback failed: %v", rcv)
	}()
	fn()
	return nil
}

// add <type> <hook> <callback> [args...] [@tag]
func (s *shell) add(tokens []token) error {
	if len(tokens) < 3 {
		return errors.New("usage: add <action|filter> <hook> <callback> [args...] [@tag]")
	}
	hookType, err := wphook.ParseHookType(tokens[0].text)
	if err != nil {
		return err
	}

	args := tokens[3:]
	var tag []string
	if n := len(args); n > 0 && !args[n-1].quoted && strings.HasPrefix(args[n-1].text, "@") {
		tag = []string{strings.TrimPrefix(args[n-1].text, "@")}
		args = args[:n-1]
	}

	fn, err := s.catalog.Build(hookType, tokens[2].text, values(args)...)
	if err != nil {
		return err
	}
	s.registry.AddHook(hookType, tokens[1].text, fn, tag...)
	return nil
}

// remove <type> <hook> [tag]
func (s *shell) remove(tokens []token) error {
	if len(tokens) < 2 || len(tokens) > 3 {
		return errors.New("usage: remove <action|filter> <hook> [tag]")
	}
	hookType, err := wphook.ParseHookType(tokens[0].text)
	if err != nil {
		return err
	}
	if len(tokens) == 3 {
		s.registry.RemoveHook(hookType, tokens[1].text, tokens[2].text)
		return nil
	}
	s.registry.RemoveHook(hookType, tokens[1].text)
	return nil
}

func (s *shell) lua(code string) error {
	if strings.TrimSpace(code) == "" {
		return errors.New("usage: lua <code>")
	}
	return s.L.DoString(code)
}

// -----------------------------------------------------------------------------
// Parsing
// -----------------------------------------------------------------------------

type token struct {
	text   string
	quoted bool
}

// value converts the token into an int, float, bool or nil. Quoted tokens and
// anything else stay strings.
func (t token) value() any {
	if t.quoted {
		return t.text
	}
	if i, err := strconv.Atoi(t.text); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(t.text, 64); err == nil {
		return f
	}
	switch t.text {
	case "true":
		return true
	case "false":
		return false
	case "nil":
		return nil
	}
	return t.text
}

func values(tokens []token) []any {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]any, len(tokens))
	for i, t := range tokens {
		out[i] = t.value()
	}
	return out
}

// tokenize splits on whitespace. Double quotes group a token and may contain
// \" and \\ escapes.
func tokenize(s string) ([]token, error) {
	var (
		tokens  []token
		current strings.Builder
		inQuote bool
		quoted  bool
		started bool
	)

	flush := func() {
		if started {
			tokens = append(tokens, token{text: current.String(), quoted: quoted})
		}
		current.Reset()
		quoted = false
		started = false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(s):
			i++
			current.WriteByte(s[i])
		case c == '"':
			inQuote = !inQuote
			quoted = true
			started = true
		case !inQuote && (c == ' ' || c == '\t'):
			flush()
		default:
			current.WriteByte(c)
			started = true
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	flush()
	return tokens, nil
}

// format renders a dispatch result; strings are quoted so that "" and nil
// can be told apart.
func format(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(val)
	}
	return fmt.Sprint(v)
}
