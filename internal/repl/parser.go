package repl

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/neekrasov/semaphore/pkg/logger"
	"go.uber.org/zap"
)

// Parse - converts the input line into a Command or returns an error for
// invalid syntax.
//
// Grammar:
//
//	acquire [n] [timeout]   - take n permits, optionally waiting at most timeout
//	try [n]                 - non-blocking attempt to take up to n permits
//	release [n]             - return n permits to the pool
//	state                   - show the current permit balance
//	help                    - list commands
//	exit                    - leave the console
func Parse(input string) (*Command, error) {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: input cannot be empty", ErrInvalidSyntax)
	}

	logger.Debug("parsed tokens", zap.Strings("tokens", tokens))

	cmd := Command{Type: CommandType(strings.ToLower(tokens[0])), N: 1}
	args := tokens[1:]

	switch cmd.Type {
	case CommandAcquire:
		if len(args) > 2 {
			return nil, fmt.Errorf("%w: acquire takes at most two arguments", ErrInvalidSyntax)
		}

		if len(args) >= 1 {
			n, err := parseCount(args[0])
			if err != nil {
				return nil, err
			}
			cmd.N = n
		}

		if len(args) == 2 {
			d, err := time.ParseDuration(args[1])
			if err != nil || d <= 0 {
				return nil, fmt.Errorf("%w: invalid timeout %q", ErrInvalidSyntax, args[1])
			}
			cmd.Timeout = d
		}
	case CommandTry, CommandRelease:
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: %s takes at most one argument", ErrInvalidSyntax, cmd.Type)
		}

		if len(args) == 1 {
			n, err := parseCount(args[0])
			if err != nil {
				return nil, err
			}
			cmd.N = n
		}
	case CommandState, CommandHelp, CommandExit:
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: %s takes no arguments", ErrInvalidSyntax, cmd.Type)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[0])
	}

	return &cmd, nil
}

func parseCount(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: permit count must be a positive integer, got %q", ErrInvalidSyntax, s)
	}

	return n, nil
}
