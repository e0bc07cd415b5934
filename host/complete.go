package host

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Complete returns the candidates for the word being typed at the end of
// text, and that word.
func (in *Interpreter) Complete(text string) (candidates []string, word string) {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return in.completeCommand(text), text
	}
	cmd, err := in.Lookup(text[:i])
	if err != nil {
		return nil, ""
	}
	word = strings.TrimLeftFunc(text[i:], unicode.IsSpace)
	switch cmd.Complete {
	case CompleteExpression:
		return in.completeTypeName(word), word
	case CompleteFilename:
		return completeFilename(word), word
	case CompleteCommand:
		return in.completeCommand(word), word
	}
	return nil, word
}

// Do implements readline.AutoCompleter.
func (in *Interpreter) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	candidates, word := in.Complete(string(line[:pos]))
	out := make([][]rune, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, []rune(c[len(word):]))
	}
	return out, len([]rune(word))
}

func (in *Interpreter) completeCommand(prefix string) []string {
	var out []string
	for name := range in.cmds {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (in *Interpreter) completeTypeName(prefix string) []string {
	if in.symbols == nil {
		return nil
	}
	var out []string
	for _, name := range in.symbols.TypeNames() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func completeFilename(prefix string) []string {
	matches, err := filepath.Glob(prefix + "*")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.IsDir() {
			m += string(filepath.Separator)
		}
		if strings.HasPrefix(m, prefix) {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
