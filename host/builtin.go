package host

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

func builtins() []*Command {
	return []*Command{
		{
			Name:     "help",
			Doc:      "Print list of commands, or the documentation of one command.\nUsage: help [command]",
			Category: CategorySupport,
			Complete: CompleteCommand,
			Invoke:   cmdHelp,
		},
		{
			Name:     "file",
			Doc:      "Use FILE as the source of symbol information.\nUsage: file FILE",
			Category: CategoryFiles,
			Complete: CompleteFilename,
			Invoke:   cmdFile,
		},
		{
			Name:     "info-enums",
			Doc:      "List the named enumeration types, optionally only those matching REGEXP.\nUsage: info-enums [REGEXP]",
			Category: CategoryData,
			Complete: CompleteNone,
			Invoke:   cmdInfoEnums,
		},
	}
}

func cmdHelp(in *Interpreter, arg string, _ bool) error {
	if arg != "" {
		cmd, err := in.Lookup(arg)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Out(), cmd.Doc)
		return nil
	}

	byCat := make(map[Category][]*Command)
	for _, cmd := range in.Commands() {
		byCat[cmd.Category] = append(byCat[cmd.Category], cmd)
	}
	cats := make([]Category, 0, len(byCat))
	for c := range byCat {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	fmt.Fprintln(in.Out(), "List of commands:")
	for _, c := range cats {
		fmt.Fprintf(in.Out(), "\n%s:\n", c)
		for _, cmd := range byCat[c] {
			fmt.Fprintf(in.Out(), "  %s -- %s\n", cmd.Name, cmd.Summary())
		}
	}
	return nil
}

func cmdFile(in *Interpreter, arg string, _ bool) error {
	if arg == "" {
		return fmt.Errorf("Usage: file FILE")
	}
	if err := in.LoadSymbols(arg); err != nil {
		return err
	}
	fmt.Fprintf(in.Out(), "Reading symbols from %s...\n", arg)
	return nil
}

func cmdInfoEnums(in *Interpreter, arg string, _ bool) error {
	var re *regexp.Regexp
	if arg != "" {
		var err error
		if re, err = regexp.Compile(arg); err != nil {
			return fmt.Errorf("Invalid regexp: %v", err)
		}
	}
	if in.Symbols() == nil {
		return fmt.Errorf("No symbol table is loaded.  Use the \"file\" command.")
	}

	var names []string
	for _, n := range in.Symbols().TypeNames() {
		name, ok := strings.CutPrefix(n, "enum ")
		if !ok {
			continue
		}
		if re != nil && !re.MatchString(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintln(in.Out(), n)
	}
	return nil
}
