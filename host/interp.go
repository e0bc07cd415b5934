package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
)

var (
	ErrUndefinedCommand = errors.New("undefined command")
	ErrAmbiguousCommand = errors.New("ambiguous command")
	ErrNoLoader         = errors.New("no symbol loader")
)

// cmdError keeps the user-facing message intact while staying matchable
// with errors.Is.
type cmdError struct {
	kind error
	msg  string
}

func (e *cmdError) Error() string { return e.msg }
func (e *cmdError) Unwrap() error { return e.kind }

// Loader opens a symbol table for the file command.
type Loader func(path string) (Symbols, error)

// Interpreter dispatches command lines to registered commands. It is not safe
// for concurrent use; commands run one at a time on the caller's goroutine.
type Interpreter struct {
	cmds    map[string]*Command
	out     io.Writer
	symbols Symbols
	loader  Loader
}

type Option func(*Interpreter)

func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

func WithSymbols(s Symbols) Option {
	return func(in *Interpreter) { in.symbols = s }
}

func WithLoader(l Loader) Option {
	return func(in *Interpreter) { in.loader = l }
}

// New creates an interpreter carrying every command in the process-wide
// registry plus the built-in help, file and info-enums commands.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		cmds: global.snapshot(),
		out:  os.Stdout,
	}
	for _, cmd := range builtins() {
		if _, ok := in.cmds[cmd.Name]; !ok {
			in.cmds[cmd.Name] = cmd
		}
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Register adds cmd to this interpreter only.
func (in *Interpreter) Register(cmd *Command) error {
	if cmd == nil || cmd.Name == "" || cmd.Invoke == nil {
		return fmt.Errorf("invalid command registration %+v", cmd)
	}
	if _, ok := in.cmds[cmd.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.Name)
	}
	in.cmds[cmd.Name] = cmd
	return nil
}

// Out is the line-oriented output sink commands write to.
func (in *Interpreter) Out() io.Writer {
	return in.out
}

func (in *Interpreter) Symbols() Symbols {
	return in.symbols
}

// SetSymbols replaces the loaded symbol table, closing the previous one.
func (in *Interpreter) SetSymbols(s Symbols) error {
	old := in.symbols
	in.symbols = s
	if old != nil && old != s {
		return old.Close()
	}
	return nil
}

// LoadSymbols opens path with the interpreter's loader and makes it the
// current symbol table.
func (in *Interpreter) LoadSymbols(path string) error {
	if in.loader == nil {
		return ErrNoLoader
	}
	s, err := in.loader(path)
	if err != nil {
		return err
	}
	return in.SetSymbols(s)
}

func (in *Interpreter) Close() error {
	return in.SetSymbols(nil)
}

// LookupType resolves a type name in the current symbol table. Runs of
// whitespace in name are treated as a single space.
func (in *Interpreter) LookupType(name string) (Type, error) {
	name = strings.Join(strings.Fields(name), " ")
	if in.symbols == nil {
		return nil, &cmdError{
			kind: ErrTypeNotFound,
			msg:  fmt.Sprintf("No type named %s: no symbol table is loaded.  Use the \"file\" command.", name),
		}
	}
	return in.symbols.LookupType(name)
}

// Lookup resolves a command by exact name or unique prefix.
func (in *Interpreter) Lookup(name string) (*Command, error) {
	if cmd, ok := in.cmds[name]; ok {
		return cmd, nil
	}
	var matches []string
	for n := range in.cmds {
		if strings.HasPrefix(n, name) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &cmdError{
			kind: ErrUndefinedCommand,
			msg:  fmt.Sprintf("Undefined command: %q.  Try \"help\".", name),
		}
	case 1:
		return in.cmds[matches[0]], nil
	}
	sort.Strings(matches)
	return nil, &cmdError{
		kind: ErrAmbiguousCommand,
		msg:  fmt.Sprintf("Ambiguous command %q: %s.", name, strings.Join(matches, ", ")),
	}
}

// Commands returns the interpreter's commands sorted by name.
func (in *Interpreter) Commands() []*Command {
	out := make([]*Command, 0, len(in.cmds))
	for _, cmd := range in.cmds {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Execute runs one command line. Blank lines do nothing.
func (in *Interpreter) Execute(line string, fromTTY bool) error {
	name, arg := splitCommand(line)
	if name == "" {
		return nil
	}
	cmd, err := in.Lookup(name)
	if err != nil {
		return err
	}
	return cmd.Invoke(in, arg, fromTTY)
}

func splitCommand(line string) (name, arg string) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}
