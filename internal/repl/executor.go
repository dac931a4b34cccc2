package repl

import (
	"context"
	"fmt"

	"github.com/neekrasov/semaphore"
)

const helpText = `commands:
  acquire [n] [timeout]  take n permits (default 1), waiting at most timeout (e.g. 500ms)
  try [n]                non-blocking attempt, reports how many permits were granted
  release [n]            return n permits (default 1) to the pool
  state                  show the current permit balance
  help                   show this message
  exit                   leave the console`

// Executor - applies parsed console commands to one shared semaphore.
type Executor struct {
	sem *semaphore.Semaphore
}

// NewExecutor - creates an executor over the given semaphore handle.
func NewExecutor(sem *semaphore.Semaphore) *Executor {
	return &Executor{sem: sem}
}

// Execute - parses and runs a single input line, returning the response
// to print. Blocking acquires are bounded by ctx.
func (e *Executor) Execute(ctx context.Context, input string) (string, error) {
	cmd, err := Parse(input)
	if err != nil {
		return "", err
	}

	switch cmd.Type {
	case CommandAcquire:
		if cmd.Timeout > 0 {
			if !e.sem.AcquireNTimeout(cmd.N, cmd.Timeout) {
				return fmt.Sprintf("timed out waiting for %d permit(s)", cmd.N), nil
			}
		} else if err := e.sem.AcquireN(ctx, cmd.N); err != nil {
			return "", err
		}

		return fmt.Sprintf("acquired %d permit(s), %d available", cmd.N, e.sem.Available()), nil
	case CommandTry:
		granted := e.sem.TryAcquireN(cmd.N)
		return fmt.Sprintf("granted %d of %d permit(s), %d available",
			granted, cmd.N, e.sem.Available()), nil
	case CommandRelease:
		e.sem.AddPermits(cmd.N)
		return fmt.Sprintf("released %d permit(s), %d available", cmd.N, e.sem.Available()), nil
	case CommandState:
		return e.sem.String(), nil
	case CommandHelp:
		return helpText, nil
	case CommandExit:
		return "", nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
}
