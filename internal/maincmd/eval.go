package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/marcusklaas/lisp-parsers/internal/sexpr"
	"github.com/marcusklaas/lisp-parsers/lang/interp"
	"github.com/marcusklaas/lisp-parsers/lang/machine"
)

// Eval runs the eval command: each argument is a file to read top-level
// forms from, in order, sharing one Environment; "-" reads from stdin.
// Every form's result is printed on its own line of stdout. This is a
// one-shot batch command, not a read-eval-print loop: there is no
// interactive prompt and the process exits once every file has been run.
func (c *Cmd) Eval(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if err := ctx.Err(); err != nil {
		return printError(stdio, err)
	}

	env := machine.NewEnvironment()
	for _, path := range args {
		src, err := readSource(stdio, path)
		if err != nil {
			return printError(stdio, err)
		}
		exprs, err := sexpr.ReadAll(src)
		if err != nil {
			return printError(stdio, fmt.Errorf("%s: %w", path, err))
		}
		for _, e := range exprs {
			v, err := interp.Evaluate(e, env)
			if err != nil {
				return printError(stdio, fmt.Errorf("%s: %w", path, err))
			}
			fmt.Fprintln(stdio.Stdout, v.String())
		}
	}
	return nil
}

func readSource(stdio mainer.Stdio, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(bufio.NewReader(stdio.Stdin))
		return string(b), err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	return string(b), err
}
