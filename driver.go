package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"trupl/pkg/asm"
	"trupl/pkg/compiler"
	"trupl/pkg/cpu"
	"trupl/pkg/feedback"
	"trupl/pkg/utils"
)

// config is what the command-line flags resolve to.
type config struct {
	out      string // explicit output path, single input only
	toStdout bool
	noColor  bool
	trace    bool
	jobs     int
	maxSteps int
	logger   *slog.Logger
}

// fileResult is one input's outcome, printed after all jobs finish so the
// report order matches the argument order.
type fileResult struct {
	path     string
	outcome  compiler.Outcome
	assembly string
	written  string
	message  string // rendered diagnostic, empty on success
	err      error
}

func (c config) options() compiler.Options {
	return compiler.Options{Logger: c.logger, Trace: c.trace}
}

// translateFile runs the translator over one file. With write set, the
// assembly of a successful translation goes to disk unless toStdout is set.
func translateFile(path string, cfg config, write bool) fileResult {
	res := fileResult{path: path}
	full, src, err := utils.ReadSource(path)
	if err != nil {
		res.outcome = compiler.Fatal
		res.err = err
		res.message = err.Error()
		return res
	}

	cfg.logger.Debug("translate", "file", full)
	run := compiler.Compile
	if !write {
		run = compiler.Check
	}
	out, err := run(src, cfg.options())
	res.outcome = out.Outcome
	res.assembly = out.Assembly
	if err != nil {
		res.err = err
		res.message = feedback.FromCompile(path, src, err).Make(!cfg.noColor)
		return res
	}

	if write && !cfg.toStdout {
		dest := cfg.out
		if dest == "" {
			dest = utils.DefaultOutputPath(path, utils.AssemblyExt)
		}
		if err := utils.WriteOutput(dest, []byte(out.Assembly)); err != nil {
			res.err = fmt.Errorf("write %s: %w", dest, err)
			res.message = res.err.Error()
			return res
		}
		res.written = dest
	}
	return res
}

// translateAll translates every path with at most cfg.jobs in flight. Each
// job owns its own translator state.
func translateAll(ctx context.Context, paths []string, cfg config, write bool) []fileResult {
	results := make([]fileResult, len(paths))
	g, _ := errgroup.WithContext(ctx)
	if cfg.jobs > 0 {
		g.SetLimit(cfg.jobs)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = translateFile(path, cfg, write)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// report prints each result and returns how many failed.
func report(w, errw io.Writer, results []fileResult, cfg config) int {
	failed := 0
	for _, r := range results {
		if len(results) > 1 {
			fmt.Fprintf(w, "# %s\n", r.path)
		}
		if r.err != nil {
			failed++
			fmt.Fprintln(errw, r.message)
		}
		if cfg.toStdout && r.err == nil {
			fmt.Fprint(w, r.assembly)
		}
		fmt.Fprintln(w, r.outcome.Message())
		if r.written != "" {
			fmt.Fprintf(w, "wrote %s\n", r.written)
		}
	}
	return failed
}

// loadProgram returns an assembled program for path: TrAL files are assembled
// directly, anything else is translated first.
func loadProgram(path string, cfg config) (*cpu.Program, string, error) {
	_, src, err := utils.ReadSource(path)
	if err != nil {
		return nil, err.Error(), err
	}

	code := src
	if !utils.IsAssembly(path) {
		out, err := compiler.Compile(src, cfg.options())
		if err != nil {
			return nil, feedback.FromCompile(path, src, err).Make(!cfg.noColor), err
		}
		code = out.Assembly
	}

	prog, _, err := asm.Assemble(code)
	if err != nil {
		err = fmt.Errorf("assembly failed: %w", err)
		return nil, err.Error(), err
	}
	return prog, "", nil
}

// runFile executes path on a fresh machine, sending outb lines to w.
func runFile(path string, cfg config, w io.Writer) (string, error) {
	prog, message, err := loadProgram(path, cfg)
	if err != nil {
		return message, err
	}

	vm := cpu.NewCPU()
	vm.Output = w
	vm.MaxSteps = cfg.maxSteps
	vm.Load(prog)
	err = vm.Run()
	cfg.logger.Debug("run complete", "file", path, "steps", vm.Steps, "pc", vm.PC,
		"regs", strings.Trim(fmt.Sprint(vm.Regs), "[]"))
	if err != nil {
		err = fmt.Errorf("run failed for %q: %w", path, err)
		return err.Error(), err
	}
	return "", nil
}
