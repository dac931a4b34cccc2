package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/neekrasov/semaphore"
	"github.com/neekrasov/semaphore/internal/repl"
	"github.com/neekrasov/semaphore/pkg/logger"
)

func main() {
	permits := flag.Uint64("permits", 4, "Initial number of permits")
	logLevel := flag.String("log_level", "error", "Console log level")
	flag.Parse()

	logger.InitLogger(*logLevel, "")

	rl, err := readline.NewEx(&readline.Config{Prompt: "sem> "})
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	console := repl.New(semaphore.New(*permits), rl)
	if err := console.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
