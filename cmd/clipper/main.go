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

	fs := flag.NewFlagSet("clipper", flag.ExitOnError)
	start := fs.String("start", "", "Start time of the cut (HH:MM:SS or MM:SS)")
	end := fs.String("end", "", "End time of the cut (HH:MM:SS or MM:SS)")
	outputPath := fs.String("path", "", "Directory for the video (default: from config)")
	name := fs.String("name", "", "Output file name without extension (default: video title)")
	metadataLog := fs.String("log-file", "", "Metadata log file, .xlsx or .csv (default: from config)")
	overrides := config.RegisterFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: clipper <video-url> [-start HH:MM:SS] [-end HH:MM:SS] [-path <dir>] [-name <name>] [-log-file <file>]")
		fmt.Fprintln(os.Stderr, "\nExample:")
		fmt.Fprintln(os.Stderr, "  clipper https://www.youtube.com/watch?v=dQw4w9WgXcQ -start 00:30 -end 01:15")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		fs.PrintDefaults()
	}

	args := os.Args[1:]
	var url string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		url, args = args[0], args[1:]
	}
	fs.Parse(args)
	if url == "" && fs.NArg() > 0 {
		url = fs.Arg(0)
	}
	if url == "" {
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

	runner := app.New(cfg, *metadataLog, logger).Runner
	spec := domain.JobSpec{URL: url, Name: *name, Start: *start, End: *end}

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

	if err := runner.Preflight(ctx, []domain.JobSpec{spec}); err != nil {
		logger.Error("Cannot cut videos", "error", err)
		closeLog()
		os.Exit(1)
	}

	result := runner.Run(ctx, spec)

	// Print summary
	fmt.Println("\n=== Job Summary ===")
	fmt.Printf("Job ID:       %s\n", result.JobID)
	fmt.Printf("Status:       %s\n", result.Status)
	if result.Status != domain.StatusSuccess {
		fmt.Printf("Error:        %s\n", result.Detail)
		closeLog()
		os.Exit(1)
	}
	fmt.Printf("Title:        %s\n", result.Metadata.Title)
	fmt.Printf("Duration:     %s\n", result.Metadata.DurationString)
	fmt.Printf("Completed At: %s\n", result.CompletedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Println(result.Detail)
}
