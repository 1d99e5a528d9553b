package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func quietConfig() config {
	return config{
		noColor: true,
		jobs:    2,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// TestSamplePrograms runs every program under _tprograms and compares what
// it prints with the .out file next to it.
func TestSamplePrograms(t *testing.T) {
	sources, err := filepath.Glob("_tprograms/*.tpl")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(sources) == 0 {
		t.Fatal("no sample programs found")
	}

	for _, src := range sources {
		name := strings.TrimSuffix(filepath.Base(src), ".tpl")
		t.Run(name, func(t *testing.T) {
			want, err := os.ReadFile(strings.TrimSuffix(src, ".tpl") + ".out")
			if err != nil {
				t.Fatalf("Failed to read expected output: %v", err)
			}

			var output bytes.Buffer
			if msg, err := runFile(src, quietConfig(), &output); err != nil {
				t.Fatalf("runFile failed: %v\n%s", err, msg)
			}
			if output.String() != string(want) {
				t.Errorf("output mismatch.\nGot:\n%s\nWant:\n%s", output.String(), want)
			}
		})
	}
}

// TestSampleProgramsRoundTrip writes each sample's assembly to disk and runs
// the .tral file, which must behave like running the source.
func TestSampleProgramsRoundTrip(t *testing.T) {
	sources, _ := filepath.Glob("_tprograms/*.tpl")
	dir := t.TempDir()

	cfg := quietConfig()
	for _, src := range sources {
		name := strings.TrimSuffix(filepath.Base(src), ".tpl")
		cfg.out = filepath.Join(dir, name+".tral")
		res := translateFile(src, cfg, true)
		if res.err != nil {
			t.Fatalf("%s: %v", src, res.err)
		}

		var fromSource, fromAsm bytes.Buffer
		if _, err := runFile(src, cfg, &fromSource); err != nil {
			t.Fatalf("%s: %v", src, err)
		}
		if _, err := runFile(cfg.out, cfg, &fromAsm); err != nil {
			t.Fatalf("%s: %v", cfg.out, err)
		}
		if fromSource.String() != fromAsm.String() {
			t.Errorf("%s: outputs differ: %q vs %q", name, fromSource.String(), fromAsm.String())
		}
	}
}

func TestRunStepLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spin.tpl")
	src := "program spin; i: int; begin i := 0; while i = 0 loop begin print i; end; end;"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := quietConfig()
	cfg.maxSteps = 1000
	msg, err := runFile(path, cfg, io.Discard)
	if err == nil || !strings.Contains(msg, "step limit exceeded") {
		t.Errorf("expected step limit error, got %v (%q)", err, msg)
	}
}
