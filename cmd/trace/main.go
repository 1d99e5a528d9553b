// Command trace shows each stage of translating one TruPL file: the token
// stream, the emitted assembly and a dump of the final symbol table.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"

	"trupl/pkg/compiler"
)

const testSource = `program demo;
	x, y: int;
begin
	x := 10;
	y := 20;
	print x + y;
end;
`

func main() {
	src := testSource
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
		src = string(data)
	}

	fmt.Printf("Source:\n%s\n", src)

	// Lex
	tokens, err := compiler.Lex(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lex error:", err)
		os.Exit(1)
	}

	fmt.Printf("Tokens (%d)\n", len(tokens))
	for _, tok := range tokens {
		fmt.Printf("  %3d:%-3d %s\n", tok.Line, tok.Col, tok)
	}
	fmt.Println()

	// Translate, logging productions to stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	res, err := compiler.Compile(src, compiler.Options{Logger: logger, Trace: true})

	fmt.Println("Generated Assembly")
	fmt.Print(res.Assembly)
	fmt.Println()
	fmt.Println(res.Outcome.Message())
	if err != nil {
		fmt.Fprintln(os.Stderr, "translate error:", err)
	}
	fmt.Println()

	fmt.Print(res.Symbols)
	fmt.Println()

	spew.Config.DisablePointerAddresses = true
	spew.Dump(res.Symbols.Entries())

	if err != nil {
		os.Exit(1)
	}
}
