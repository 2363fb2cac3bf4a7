// Command batch sanitizes every JSON file in a directory and writes a
// Parquet summary of the per-file results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/raaihank/datascrub/internal/batch"
	"github.com/raaihank/datascrub/internal/config"
	"github.com/raaihank/datascrub/internal/detect"
	"github.com/raaihank/datascrub/internal/logger"
	"github.com/raaihank/datascrub/internal/recognize"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to configuration file")
		inputDir   = flag.String("input", "", "Directory of JSON files to sanitize (required)")
		outputDir  = flag.String("output", "", "Directory for sanitized files (required)")
		summary    = flag.String("summary", "", "Parquet summary output path (empty disables)")
		seed       = flag.Uint64("seed", 0, "Seed for reproducible fake values (0 = random)")
		detectors  = flag.String("detectors", "", "Comma-separated detector list")
		shared     = flag.Bool("shared-replacer", false, "Share one replacement cache across all files")
	)
	flag.Parse()

	if *inputDir == "" || *outputDir == "" {
		fmt.Fprintln(os.Stderr, "Both -input and -output are required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Sanitizer.Seed = *seed
	}
	if *detectors != "" {
		cfg.Sanitizer.Detectors = strings.Split(*detectors, ",")
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var recognizer recognize.Recognizer
	if cfg.Sanitizer.NameModel != "" {
		recognizer = recognize.NewModelRecognizer(
			log.WithComponent("recognize").Logger, cfg.Sanitizer.NameModel, 128)
	}

	built, err := detect.Build(cfg.Sanitizer.Detectors, recognizer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	pipeline := batch.NewPipeline(built, &batch.Config{
		InputDir:       *inputDir,
		OutputDir:      *outputDir,
		Seed:           cfg.Sanitizer.Seed,
		SharedReplacer: *shared,
		SummaryFile:    *summary,
	}, log.WithComponent("batch").Logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	result, err := pipeline.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Batch run failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Processed %d files (%d failed): %d records, %d replacements in %s\n",
		result.FilesProcessed, result.FilesFailed,
		result.TotalRecords, result.TotalReplaced, result.Duration.Round(0))

	if result.FilesFailed > 0 {
		os.Exit(1)
	}
}
