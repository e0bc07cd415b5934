package host

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrDuplicateCommand = errors.New("duplicate command")

// Category groups commands in help output.
type Category int

const (
	CategoryNone Category = iota
	CategoryData
	CategoryFiles
	CategoryStatus
	CategorySupport
	CategoryObscure
	CategoryUser
)

func (c Category) String() string {
	switch c {
	case CategoryData:
		return "data"
	case CategoryFiles:
		return "files"
	case CategoryStatus:
		return "status"
	case CategorySupport:
		return "support"
	case CategoryObscure:
		return "obscure"
	case CategoryUser:
		return "user-defined"
	}
	return "none"
}

// CompleteMode selects how a command's argument is completed.
type CompleteMode int

const (
	CompleteNone CompleteMode = iota
	CompleteFilename
	CompleteExpression
	CompleteCommand
)

// InvokeFunc runs a command. arg is the text after the command name with
// surrounding whitespace removed.
type InvokeFunc func(in *Interpreter, arg string, fromTTY bool) error

type Command struct {
	Name     string
	Doc      string
	Category Category
	Complete CompleteMode
	Invoke   InvokeFunc
}

// Summary is the first line of the command's doc.
func (c *Command) Summary() string {
	for i := 0; i < len(c.Doc); i++ {
		if c.Doc[i] == '\n' {
			return c.Doc[:i]
		}
	}
	return c.Doc
}

type registry struct {
	mu   sync.Mutex
	cmds map[string]*Command
}

func (r *registry) add(cmd *Command) error {
	if cmd == nil || cmd.Name == "" || cmd.Invoke == nil {
		return fmt.Errorf("invalid command registration %+v", cmd)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmds == nil {
		r.cmds = make(map[string]*Command)
	}
	if _, ok := r.cmds[cmd.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, cmd.Name)
	}
	r.cmds[cmd.Name] = cmd
	return nil
}

func (r *registry) snapshot() map[string]*Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*Command, len(r.cmds))
	for k, v := range r.cmds {
		out[k] = v
	}
	return out
}

var global registry

// Register adds cmd to the process-wide registry. Interpreters created
// afterwards carry it for their whole lifetime.
func Register(cmd *Command) error {
	return global.add(cmd)
}

// MustRegister is Register for package init functions.
func MustRegister(cmd *Command) {
	if err := Register(cmd); err != nil {
		panic(err)
	}
}

// Registered returns the names in the process-wide registry, sorted.
func Registered() []string {
	cmds := global.snapshot()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
