package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	dwarfhelper "dwarfenum/dwarf"
	"dwarfenum/host"
	"dwarfenum/utils"

	"github.com/apex/log"
	"github.com/chzyer/readline"
	mapset "github.com/deckarep/golang-set"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var errColor = color.New(color.FgRed)

func loadSymbols(path string) (host.Symbols, error) {
	return dwarfhelper.NewDwarfInfo(path)
}

// NewSession creates an interpreter writing to out, with input's symbols
// loaded when input is set.
func NewSession(input string, out io.Writer) (*host.Interpreter, error) {
	in := host.New(host.WithOutput(out), host.WithLoader(loadSymbols))
	if input == "" {
		return in, nil
	}
	if err := in.LoadSymbols(input); err != nil {
		return nil, err
	}
	return in, nil
}

func reportError(w io.Writer, err error) {
	errColor.Fprintln(w, err.Error())
}

func isQuit(line string) bool {
	switch strings.TrimSpace(line) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

// RunBatch executes cmds in order. Failing commands are reported to errOut
// and do not stop the rest; the returned error counts them.
func RunBatch(in *host.Interpreter, cmds []string, errOut io.Writer) error {
	failed := 0
	for _, c := range cmds {
		log.WithField("command", c).Debug("Executing")
		if err := in.Execute(c, false); err != nil {
			reportError(errOut, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d commands failed", failed, len(cmds))
	}
	return nil
}

// RunScript reads commands line by line from r until EOF or quit.
func RunScript(in *host.Interpreter, r io.Reader, errOut io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if isQuit(line) {
			break
		}
		if err := in.Execute(line, false); err != nil {
			reportError(errOut, err)
		}
	}
	return scanner.Err()
}

// Interactive runs a readline prompt on the terminal.
func Interactive(in *host.Interpreter, historyFile string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return RunScript(in, os.Stdin, os.Stderr)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "(dwarfenum) ",
		HistoryFile:       historyFile,
		AutoComplete:      in,
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		HistorySearchFold: true,
		FuncFilterInputRune: func(r rune) (rune, bool) {
			switch r {
			case readline.CharCtrlZ:
				return r, false
			}
			return r, true
		},
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if isQuit(line) {
			return nil
		}
		if err := in.Execute(line, true); err != nil {
			reportError(os.Stderr, err)
		}
	}
}

// DwarfHelper writes every enum in ipath as a C header to opath.
func DwarfHelper(ipath, opath string) error {
	info, err := dwarfhelper.NewDwarfInfo(ipath)
	if err != nil {
		return err
	}
	defer info.Close()

	create, err := os.Create(opath)
	if err != nil {
		return err
	}
	defer create.Close()

	w := bufio.NewWriter(create)
	if err := GenerateEnumCHeaderFile(info.Enums(), w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.WithField("file", opath).Info("Wrote enum header")
	return nil
}

// GenerateEnumCHeaderFile writes enums as C declarations, skipping toolchain
// enums and repeated names.
func GenerateEnumCHeaderFile(enums []*dwarfhelper.Enum, w io.Writer) error {
	if _, err := io.WriteString(w, "#pragma once\n\n"); err != nil {
		return err
	}
	seen := mapset.NewSet()
	for _, v := range enums {
		if utils.FilterEnumName(v.Name) || !seen.Add(v.Name) {
			continue
		}
		kw := "enum"
		if v.EnumClass {
			kw = "enum class"
		}
		if _, err := fmt.Fprintf(w, "%s %s : %s {\n", kw, v.Name, v.Base); err != nil {
			return err
		}
		for _, v1 := range v.EnumType.Val {
			if _, err := fmt.Fprintf(w, "\t%s = %s,\n", v1.Name, utils.FormatEnumValue(v.Base, v1.Val)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "};\n\n"); err != nil {
			return err
		}
	}
	return nil
}
