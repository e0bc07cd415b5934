package main

import (
	"os"
	"path/filepath"

	_ "dwarfenum/printenum"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/urfave/cli/v2"
)

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dwarfenum_history")
}

func inputFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "binary to read DWARF symbols from",
		Required: required,
	}
}

func main() {
	log.SetHandler(clihandler.Default)

	app := &cli.App{
		Name:  "dwarfenum",
		Usage: "Inspect enumeration types in a binary's DWARF debug information",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "debug logging",
				EnvVars: []string{"DWARFENUM_VERBOSE"},
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:    "shell",
				Aliases: []string{"s"},
				Usage:   "interactive command session",
				Flags: []cli.Flag{
					inputFlag(false),
					&cli.StringFlag{
						Name:    "history",
						Usage:   "history file",
						Value:   defaultHistory(),
						EnvVars: []string{"DWARFENUM_HISTORY"},
					},
				},
				Action: func(c *cli.Context) error {
					in, err := NewSession(c.String("input"), os.Stdout)
					if err != nil {
						return err
					}
					defer in.Close()
					return Interactive(in, c.String("history"))
				},
			},
			{
				Name:      "exec",
				Aliases:   []string{"x"},
				Usage:     "run commands and exit",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					inputFlag(true),
					&cli.StringSliceFlag{
						Name:    "ex",
						Aliases: []string{"e"},
						Usage:   "command to execute, may be repeated",
					},
				},
				Action: func(c *cli.Context) error {
					in, err := NewSession(c.String("input"), os.Stdout)
					if err != nil {
						return err
					}
					defer in.Close()
					return RunBatch(in, c.StringSlice("ex"), os.Stderr)
				},
			},
			{
				Name:    "header",
				Aliases: []string{"d"},
				Usage:   "dwarf enums to c header file",
				Flags: []cli.Flag{
					inputFlag(true),
					&cli.StringFlag{
						Name:        "output",
						Aliases:     []string{"o"},
						Usage:       "output file path",
						Value:       "enums.h",
						DefaultText: "enums.h",
					},
				},
				Action: func(c *cli.Context) error {
					return DwarfHelper(c.String("input"), c.String("output"))
				},
			},
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err.Error())
	}
}
