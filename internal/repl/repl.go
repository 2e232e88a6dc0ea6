// Package repl implements the interactive read-eval-print loop: one
// persistent environment for the whole session, colored feedback, and
// readline-backed history.
package repl

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/kvist-lang/kvist/environment"
	"github.com/kvist-lang/kvist/eval"
	"github.com/kvist-lang/kvist/lexer"
	"github.com/kvist-lang/kvist/parser"
	"github.com/kvist-lang/kvist/value"
)

var (
	errorColor  = color.New(color.FgRed)
	resultColor = color.New(color.FgYellow)
	bannerColor = color.New(color.FgCyan)
)

const prompt = ">> "

// Repl runs a kvist session against a single persistent environment.
type Repl struct {
	args []string
}

// New creates a Repl whose `args` built-in returns args.
func New(args []string) *Repl {
	return &Repl{args: args}
}

// Start prints a short banner, then reads, evaluates, and prints lines from
// stdin until EOF. Blank lines are ignored; parse errors and evaluation
// errors are reported without ending the session.
func (r *Repl) Start(writer io.Writer) error {
	bannerColor.Fprintln(writer, "kvist")
	bannerColor.Fprintln(writer, "Ctrl-D to exit")

	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	// readln reads from the real stdin, independent of readline's own
	// line-editing reader.
	ev := eval.New(writer, os.Stdin, r.args)
	env := environment.New()

	for {
		line, err := rl.Readline()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)
		r.evalLine(writer, line, ev, env)
	}
}

func (r *Repl) evalLine(writer io.Writer, line string, ev *eval.Evaluator, env *environment.Environment) {
	nodes, errs := parser.Parse(lexer.New(line))
	if len(errs) > 0 {
		for _, e := range errs {
			errorColor.Fprintf(writer, "ERROR: %s\n", e)
		}
		return
	}

	var last value.Value
	for _, n := range nodes {
		v, err := ev.Eval(n, env)
		if err != nil {
			errorColor.Fprintln(writer, "Execution error:")
			errorColor.Fprintf(writer, "ERROR: %s\n", err)
			return
		}
		last = v
	}
	if last != nil {
		resultColor.Fprintf(writer, "%s\n", last.View())
	}
}
