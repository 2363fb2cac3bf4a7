// Command scrub sanitizes a JSON file of records, replacing detected
// PII with consistent fake values.
//
// Usage:
//
//	scrub [flags] <input.json> <output.json>
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/raaihank/datascrub/internal/config"
	"github.com/raaihank/datascrub/internal/detect"
	"github.com/raaihank/datascrub/internal/logger"
	"github.com/raaihank/datascrub/internal/recognize"
	"github.com/raaihank/datascrub/internal/replace"
	"github.com/raaihank/datascrub/internal/sanitize"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		seed        = flag.Uint64("seed", 0, "Seed for reproducible fake values (0 = random)")
		detectors   = flag.String("detectors", "", "Comma-separated detector list (email,phone,name,credit_card or all)")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("scrub %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	if flag.NArg() != 2 {
		usage()
		os.Exit(1)
	}
	inputPath, outputPath := flag.Arg(0), flag.Arg(1)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override the configuration file.
	if *seed != 0 {
		cfg.Sanitizer.Seed = *seed
	}
	if *detectors != "" {
		cfg.Sanitizer.Detectors = strings.Split(*detectors, ",")
		if err := config.ValidateDetectors(cfg.Sanitizer.Detectors); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	level := cfg.Logging.Level
	if *verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Format: "console"})
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

	sanitizer := sanitize.New(built, replace.New(cfg.Sanitizer.Seed), log.Logger)
	result := sanitizer.SanitizeFile(inputPath, outputPath)

	if !result.Success {
		fmt.Fprintf(os.Stderr, "Error: %s\n", result.ErrorMessage)
		os.Exit(1)
	}

	fmt.Printf("Sanitized %d records: %d fields contained PII, %d replacements made\n",
		result.RecordsProcessed, result.FieldsDetected, result.ReplacementsMade)
	fmt.Printf("Output written to %s\n", outputPath)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: scrub [flags] <input.json> <output.json>\n\nFlags:\n")
	flag.PrintDefaults()
}
