// Command kvist is the interpreter's entry point: no arguments starts the
// REPL, one positional argument runs that file as a script, and anything
// after it is exposed to the program via the `args` built-in.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kvist-lang/kvist/internal/repl"
	"github.com/kvist-lang/kvist/internal/script"
)

const version = "v0.1.0"

func main() {
	root := &cobra.Command{
		Use:     "kvist [path] [args...]",
		Short:   "kvist is an interpreter for the kvist expression language",
		Version: version,
		Args:    cobra.ArbitraryArgs,
		RunE:    run,
		// cobra's default arg parsing would otherwise try to interpret
		// flags meant for the running kvist program itself.
		DisableFlagParsing: true,
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return repl.New(nil).Start(os.Stdout)
	}

	// DisableFlagParsing hands every argument to us verbatim so that flags
	// meant for the running kvist program (after the script path) reach it
	// untouched. That means --help/--version have to be recognized here,
	// before args[0] is treated as a script path.
	switch args[0] {
	case "--help", "-h":
		return cmd.Help()
	case "--version", "-v":
		fmt.Fprintf(os.Stdout, "%s version %s\n", cmd.Name(), version)
		return nil
	}

	path := args[0]
	programArgs := args[1:]
	if err := script.Run(path, os.Stdout, os.Stderr, programArgs); err != nil {
		os.Exit(1)
	}
	return nil
}
