package repl

import (
	"errors"
	"time"
)

var (
	// ErrInvalidSyntax - returned when the input cannot be parsed into a command.
	ErrInvalidSyntax = errors.New("invalid syntax")
	// ErrUnknownCommand - returned when the command verb is not recognized.
	ErrUnknownCommand = errors.New("unknown command")
)

// CommandType - type of console command.
type CommandType string

const (
	CommandAcquire CommandType = "acquire"
	CommandTry     CommandType = "try"
	CommandRelease CommandType = "release"
	CommandState   CommandType = "state"
	CommandHelp    CommandType = "help"
	CommandExit    CommandType = "exit"
)

// Command - a parsed console command.
type Command struct {
	Type    CommandType
	N       uint64        // Permit count for acquire/try/release, defaults to 1.
	Timeout time.Duration // Optional wait bound for acquire, 0 means wait indefinitely.
}
