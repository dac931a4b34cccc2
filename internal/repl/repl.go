// Package repl implements the interactive console behind semacli: a
// readline loop whose commands drive a single live semaphore, useful for
// experimenting with acquire ordering and timeout behaviour by hand.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/neekrasov/semaphore"
)

// Repl - an interactive console over one semaphore.
type Repl struct {
	rl   *readline.Instance
	exec *Executor
}

// New - creates a console over the given semaphore handle.
func New(sem *semaphore.Semaphore, rl *readline.Instance) *Repl {
	return &Repl{rl: rl, exec: NewExecutor(sem)}
}

// Run - reads and executes commands until exit, EOF, interrupt or context
// cancellation.
func (r *Repl) Run(ctx context.Context) error {
	defer r.rl.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("read input failed: %w", err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.TrimSpace(line) == string(CommandExit) {
			return nil
		}

		out, err := r.exec.Execute(ctx, line)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}

			out = fmt.Sprintf("error: %s", err.Error())
		}

		if _, err := r.rl.Write([]byte(out + "\n")); err != nil {
			return fmt.Errorf("write output failed: %w", err)
		}
	}
}
