package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"clipbatch/internal/adapters/sheets"
	"clipbatch/internal/app"
	"clipbatch/internal/config"
	"clipbatch/internal/core/domain"
	"clipbatch/internal/logging"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	fs := flag.NewFlagSet("clipbatch", flag.ExitOnError)
	outputPath := fs.String("output-path", "", "Directory for the videos and logs (default: from config)")
	overrides := config.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: clipbatch <input.xlsx|input.csv> [-output-path <dir>] [options]")
		fmt.Fprintln(os.Stderr, "\nThe input table needs a 'url' column; 'id', 'start_time' and 'end_time' are optional.")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		fs.PrintDefaults()
	}

	// The input file may come before or after the flags
	args := os.Args[1:]
	var inputPath string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		inputPath, args = args[0], args[1:]
	}
	fs.Parse(args)
	if inputPath == "" && fs.NArg() > 0 {
		inputPath = fs.Arg(0)
	}
	if inputPath == "" {
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*overrides.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MergeFlags(overrides)
	if *outputPath != "" {
		cfg.OutputDir = *outputPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLog, err := logging.New(logging.LogLevel(cfg.LogLevel), cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()

	if _, err := os.Stat(inputPath); err != nil {
		logger.Error("Input file not found", "path", inputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("Reading videos", "input", inputPath)
	specs, err := sheets.NewJobReader().ReadJobs(inputPath)
	if err != nil {
		logger.Error("Failed to read input table", "error", err)
		os.Exit(1)
	}
	logger.Info("Videos found", "count", len(specs), "output_dir", cfg.OutputDir)

	orchestrator := app.New(cfg, "", logger).Orchestrator(logger)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("Received interrupt signal, cancelling...")
		cancel()
	}()

	records, err := orchestrator.RunBatch(ctx, specs)
	if err != nil {
		logger.Error("Batch aborted", "error", err)
		closeLog()
		os.Exit(1)
	}

	// Print summary
	fmt.Println("\n=== Batch Summary ===")
	for _, r := range records {
		fmt.Printf("%3d  %-8s %s\n", r.VideoNumber, r.Status, r.Detail)
	}
	fmt.Printf("\nSucceeded: %d  Failed: %d  Skipped: %d\n",
		count(records, domain.StatusSuccess),
		count(records, domain.StatusFailure),
		count(records, domain.StatusSkipped))
	fmt.Printf("All files saved to: %s\n", cfg.OutputDir)
}

func count(records []domain.BatchLogRecord, status domain.JobStatus) int {
	n := 0
	for _, r := range records {
		if r.Status == status {
			n++
		}
	}
	return n
}
