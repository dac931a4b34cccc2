package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/neekrasov/semaphore/internal/bench"
	"github.com/neekrasov/semaphore/internal/config"
	"github.com/neekrasov/semaphore/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
	gitHash   = "unset"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "semabench",
		Short: "Bounded-concurrency load generator for the semaphore package",
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("semabench version %s\nbuild time: %s\nhash: %s\n",
				version, buildTime, gitHash)
		},
	})

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, _ := cmd.Flags().GetString("config")
			startBench(configPath)
		},
	}

	runCmd.Flags().StringP("config", "c", "config.yml", "Path to config file")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func startBench(cfgPath string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	cfg, err := config.GetConfig(cfgPath)
	if err != nil {
		log.Fatalf("failed to get config: %s", err)
	}

	level, output := "info", ""
	if cfg.Logging != nil {
		if cfg.Logging.Level != "" {
			level = cfg.Logging.Level
		}
		output = cfg.Logging.Output
	}
	logger.InitLogger(level, output)

	runner, err := bench.NewRunner(cfg)
	if err != nil {
		log.Fatalf("failed to init bench: %s", err)
	}

	if _, err := runner.Run(ctx); err != nil {
		log.Fatalf("bench error: %s", err)
	}
}
