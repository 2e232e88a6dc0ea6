// Package script runs a kvist source file once: read, lex, parse, evaluate,
// report any failure to stderr.
package script

import (
	"fmt"
	"io"
	"os"

	"github.com/kvist-lang/kvist/environment"
	"github.com/kvist-lang/kvist/eval"
	"github.com/kvist-lang/kvist/lexer"
	"github.com/kvist-lang/kvist/parser"
)

// Run reads path, evaluates its whole program against a fresh environment,
// and returns a non-nil error on read, parse or evaluation failure. Nothing
// is printed on success.
func Run(path string, stdout, stderr io.Writer, args []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("cannot read %s: %w", path, err)
		fmt.Fprintf(stderr, "ERROR: %s\n", err)
		return err
	}

	nodes, errs := parser.Parse(lexer.New(string(data)))
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(stderr, "ERROR: %s\n", e)
		}
		return fmt.Errorf("%d parse error(s) in %s", len(errs), path)
	}

	ev := eval.New(stdout, os.Stdin, args)
	env := environment.New()
	for _, n := range nodes {
		if _, err := ev.Eval(n, env); err != nil {
			fmt.Fprintln(stderr, "Execution error:")
			fmt.Fprintf(stderr, "ERROR: %s\n", err)
			return err
		}
	}
	return nil
}
