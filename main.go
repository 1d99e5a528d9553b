package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

var (
	outPath   string
	toStdout  bool
	noColor   bool
	verbose   bool
	traceProd bool
	jobs      int
	maxSteps  int
)

func newConfig() config {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return config{
		out:      outPath,
		toStdout: toStdout,
		noColor:  noColor,
		trace:    traceProd,
		jobs:     jobs,
		maxSteps: maxSteps,
		logger:   slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "trupl"
	app.Usage = "translate TruPL programs to TrAL assembly"
	app.Version = "1.0.0"
	app.Writer = stdout
	app.ErrWriter = stderr

	noColorFlag := cli.BoolFlag{
		Name:        "no-color",
		Usage:       "hide colors in error messages",
		EnvVar:      "TRUPL_NO_COLOR",
		Destination: &noColor,
	}

	verboseFlag := cli.BoolFlag{
		Name:        "verbose",
		Usage:       "log declarations and progress to stderr",
		EnvVar:      "TRUPL_VERBOSE",
		Destination: &verbose,
	}

	traceFlag := cli.BoolFlag{
		Name:        "trace",
		Usage:       "with --verbose, log every grammar production entered",
		Destination: &traceProd,
	}

	jobsFlag := cli.IntFlag{
		Name:        "jobs, j",
		Usage:       "translate up to `N` files at once (0 means no limit)",
		Value:       4,
		Destination: &jobs,
	}

	app.Commands = []cli.Command{
		{
			Name:      "compile",
			Aliases:   []string{"c"},
			Usage:     "Translate file(s) to TrAL assembly",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:        "out, o",
					Usage:       "write assembly to `PATH` (single input only)",
					Destination: &outPath,
				},
				cli.BoolFlag{
					Name:        "stdout",
					Usage:       "print assembly instead of writing .tral files",
					Destination: &toStdout,
				},
				noColorFlag,
				verboseFlag,
				traceFlag,
				jobsFlag,
			},
			Action: func(c *cli.Context) error {
				if len(c.Args()) == 0 {
					return cli.NewExitError("compile: no input files", 2)
				}
				if outPath != "" && len(c.Args()) > 1 {
					return cli.NewExitError("compile: --out needs exactly one input file", 2)
				}
				cfg := newConfig()
				results := translateAll(context.Background(), c.Args(), cfg, true)
				if n := report(stdout, stderr, results, cfg); n > 0 {
					return cli.NewExitError("", 1)
				}
				return nil
			},
		},
		{
			Name:      "check",
			Usage:     "Check syntax and types of file(s) without writing output",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				noColorFlag,
				verboseFlag,
				traceFlag,
				jobsFlag,
			},
			Action: func(c *cli.Context) error {
				if len(c.Args()) == 0 {
					return cli.NewExitError("check: no input files", 2)
				}
				cfg := newConfig()
				cfg.toStdout = false
				results := translateAll(context.Background(), c.Args(), cfg, false)
				if n := report(stdout, stderr, results, cfg); n > 0 {
					return cli.NewExitError("", 1)
				}
				return nil
			},
		},
		{
			Name:      "run",
			Aliases:   []string{"r"},
			Usage:     "Translate, assemble and execute a file (.tral files are assembled directly)",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:        "max-steps",
					Usage:       "stop after `N` instructions (0 means the machine default)",
					Destination: &maxSteps,
				},
				noColorFlag,
				verboseFlag,
				traceFlag,
			},
			Action: func(c *cli.Context) error {
				if len(c.Args()) != 1 {
					return cli.NewExitError("run: expected exactly one file", 2)
				}
				cfg := newConfig()
				if message, err := runFile(c.Args().First(), cfg, stdout); err != nil {
					fmt.Fprintln(stderr, message)
					return cli.NewExitError("", 1)
				}
				return nil
			},
		},
	}

	app.Action = func(c *cli.Context) error {
		return cli.ShowAppHelp(c)
	}

	return app
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
