package host

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type stubType struct {
	name   string
	code   TypeCode
	fields []Field
}

func (s *stubType) Name() string    { return s.name }
func (s *stubType) Code() TypeCode  { return s.code }
func (s *stubType) Fields() []Field { return s.fields }
func (s *stubType) String() string  { return s.name }

type stubSymbols struct {
	types  map[string]*stubType
	closed bool
}

func (s *stubSymbols) LookupType(name string) (Type, error) {
	if t, ok := s.types[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
}

func (s *stubSymbols) TypeNames() []string {
	var names []string
	for n := range s.types {
		names = append(names, n)
	}
	return names
}

func (s *stubSymbols) Close() error {
	s.closed = true
	return nil
}

func newStubSymbols() *stubSymbols {
	return &stubSymbols{types: map[string]*stubType{
		"enum Color":  {name: "Color", code: TypeCodeEnum},
		"enum Colour": {name: "Colour", code: TypeCodeEnum},
		"enum Mode":   {name: "Mode", code: TypeCodeEnum},
		"int":         {name: "int", code: TypeCodeInt},
	}}
}

func newTestInterpreter(t *testing.T, opts ...Option) (*Interpreter, *bytes.Buffer, *[]string) {
	t.Helper()
	var out bytes.Buffer
	in := New(append([]Option{WithOutput(&out)}, opts...)...)
	var got []string
	echo := func(in *Interpreter, arg string, fromTTY bool) error {
		got = append(got, arg)
		return nil
	}
	for _, name := range []string{"echo", "echo-all", "print"} {
		if err := in.Register(&Command{Name: name, Doc: name + " args", Category: CategoryUser, Complete: CompleteExpression, Invoke: echo}); err != nil {
			t.Fatalf("failed to register %s: %v", name, err)
		}
	}
	return in, &out, &got
}

func TestExecuteDispatch(t *testing.T) {
	in, _, got := newTestInterpreter(t)

	tests := []struct {
		line string
		want string
	}{
		{"echo hello", "hello"},
		{"  echo   spaced   out  ", "spaced   out"},
		{"echo", ""},
		{"echo\tenum Color", "enum Color"},
		{"pr x", "x"},
	}
	for _, tt := range tests {
		*got = nil
		if err := in.Execute(tt.line, false); err != nil {
			t.Fatalf("Execute(%q) failed: %v", tt.line, err)
		}
		if len(*got) != 1 || (*got)[0] != tt.want {
			t.Errorf("Execute(%q): expected arg %q, got %q", tt.line, tt.want, *got)
		}
	}
}

func TestExecuteBlankLine(t *testing.T) {
	in, out, got := newTestInterpreter(t)
	for _, line := range []string{"", "   ", "\t"} {
		if err := in.Execute(line, true); err != nil {
			t.Errorf("Execute(%q): unexpected error %v", line, err)
		}
	}
	if len(*got) != 0 || out.Len() != 0 {
		t.Errorf("expected blank lines to do nothing")
	}
}

func TestExecuteUndefinedAndAmbiguous(t *testing.T) {
	in, out, _ := newTestInterpreter(t)

	err := in.Execute("frobnicate now", true)
	if !errors.Is(err, ErrUndefinedCommand) {
		t.Fatalf("expected ErrUndefinedCommand, got %v", err)
	}
	if err.Error() != `Undefined command: "frobnicate".  Try "help".` {
		t.Errorf("unexpected message %q", err.Error())
	}

	err = in.Execute("ech x", true)
	if !errors.Is(err, ErrAmbiguousCommand) {
		t.Fatalf("expected ErrAmbiguousCommand, got %v", err)
	}
	if err.Error() != `Ambiguous command "ech": echo, echo-all.` {
		t.Errorf("unexpected message %q", err.Error())
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRegisterDuplicate(t *testing.T) {
	in, _, _ := newTestInterpreter(t)
	err := in.Register(&Command{Name: "echo", Invoke: func(*Interpreter, string, bool) error { return nil }})
	if !errors.Is(err, ErrDuplicateCommand) {
		t.Errorf("expected ErrDuplicateCommand, got %v", err)
	}
	if err := in.Register(&Command{Name: "broken"}); err == nil {
		t.Errorf("expected error registering a command without Invoke")
	}
}

func TestGlobalRegistry(t *testing.T) {
	called := false
	cmd := &Command{
		Name:     "test-global-registry",
		Category: CategoryObscure,
		Invoke: func(*Interpreter, string, bool) error {
			called = true
			return nil
		},
	}
	if err := Register(cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Register(cmd); !errors.Is(err, ErrDuplicateCommand) {
		t.Errorf("expected ErrDuplicateCommand, got %v", err)
	}

	in := New(WithOutput(&bytes.Buffer{}))
	if err := in.Execute("test-global-registry", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Errorf("expected the globally registered command to run")
	}
}

func TestHelp(t *testing.T) {
	in, out, _ := newTestInterpreter(t)

	if err := in.Execute("help", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"List of commands:",
		"data:\n  info-enums -- List the named enumeration types",
		"files:\n  file -- Use FILE as the source of symbol information.",
		"support:\n  help -- Print list of commands",
		"user-defined:\n  echo -- echo args",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected help output to contain %q, got:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := in.Execute("help file", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "Use FILE as the source of symbol information.\nUsage: file FILE\n" {
		t.Errorf("unexpected help file output %q", out.String())
	}

	if err := in.Execute("help nope", true); !errors.Is(err, ErrUndefinedCommand) {
		t.Errorf("expected ErrUndefinedCommand, got %v", err)
	}
}

func TestFileCommand(t *testing.T) {
	first := newStubSymbols()
	second := newStubSymbols()
	var loaded []string
	loader := func(path string) (Symbols, error) {
		loaded = append(loaded, path)
		if path == "bad" {
			return nil, errors.New("not an executable")
		}
		if len(loaded) == 1 {
			return first, nil
		}
		return second, nil
	}
	in, out, _ := newTestInterpreter(t, WithLoader(loader))

	if err := in.Execute("file", true); err == nil {
		t.Errorf("expected usage error")
	}
	if err := in.Execute("file ./a.out", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "Reading symbols from ./a.out...\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if in.Symbols() != first {
		t.Fatalf("expected the loaded symbols to be current")
	}
	if err := in.Execute("file ./b.out", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.closed {
		t.Errorf("expected replaced symbols to be closed")
	}
	if err := in.Execute("file bad", true); err == nil {
		t.Errorf("expected loader error")
	}
	if in.Symbols() != second {
		t.Errorf("expected a failed load to keep the current symbols")
	}
	if err := in.Close(); err != nil || !second.closed {
		t.Errorf("expected Close to close the symbols, err = %v", err)
	}
}

func TestFileCommandWithoutLoader(t *testing.T) {
	in, _, _ := newTestInterpreter(t)
	if err := in.Execute("file ./a.out", true); !errors.Is(err, ErrNoLoader) {
		t.Errorf("expected ErrNoLoader, got %v", err)
	}
}

func TestInfoEnums(t *testing.T) {
	in, out, _ := newTestInterpreter(t, WithSymbols(newStubSymbols()))

	if err := in.Execute("info-enums", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "Color\nColour\nMode\n" {
		t.Errorf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := in.Execute("info-enums ^Col", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "Color\nColour\n" {
		t.Errorf("unexpected output %q", out.String())
	}

	if err := in.Execute("info-enums [", true); err == nil {
		t.Errorf("expected invalid regexp error")
	}

	bare, _, _ := newTestInterpreter(t)
	if err := bare.Execute("info-enums", true); err == nil {
		t.Errorf("expected error without a symbol table")
	}
}

func TestLookupType(t *testing.T) {
	in, _, _ := newTestInterpreter(t)
	if _, err := in.LookupType("int"); !errors.Is(err, ErrTypeNotFound) {
		t.Errorf("expected ErrTypeNotFound without symbols, got %v", err)
	}

	if err := in.SetSymbols(newStubSymbols()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	typ, err := in.LookupType("  enum   Color ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ.Name() != "Color" || typ.Code() != TypeCodeEnum {
		t.Errorf("unexpected type %s (%s)", typ.Name(), typ.Code())
	}
}

func TestComplete(t *testing.T) {
	in, _, _ := newTestInterpreter(t, WithSymbols(newStubSymbols()))

	tests := []struct {
		text string
		want []string
		word string
	}{
		{"ec", []string{"echo", "echo-all"}, "ec"},
		{"he", []string{"help"}, "he"},
		{"echo enum Co", []string{"enum Color", "enum Colour"}, "enum Co"},
		{"echo   i", []string{"int"}, "i"},
		{"help ec", []string{"echo", "echo-all"}, "ec"},
		{"info-enums C", nil, "C"},
		{"nope x", nil, ""},
	}
	for _, tt := range tests {
		got, word := in.Complete(tt.text)
		if !reflect.DeepEqual(got, tt.want) || word != tt.word {
			t.Errorf("Complete(%q) = %q, %q; expected %q, %q", tt.text, got, word, tt.want, tt.word)
		}
	}
}

func TestCompleteFilename(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.out"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "assets"), 0755); err != nil {
		t.Fatal(err)
	}
	in, _, _ := newTestInterpreter(t)

	got, _ := in.Complete("file " + filepath.Join(dir, "a"))
	want := []string{filepath.Join(dir, "a.out"), filepath.Join(dir, "assets") + string(filepath.Separator)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDo(t *testing.T) {
	in, _, _ := newTestInterpreter(t, WithSymbols(newStubSymbols()))

	line := []rune("echo enum Col")
	got, length := in.Do(line, len(line))
	if length != len("enum Col") {
		t.Errorf("expected length %d, got %d", len("enum Col"), length)
	}
	var suffixes []string
	for _, r := range got {
		suffixes = append(suffixes, string(r))
	}
	if want := []string{"or", "our"}; !reflect.DeepEqual(suffixes, want) {
		t.Errorf("expected %q, got %q", want, suffixes)
	}
}
