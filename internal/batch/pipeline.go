// Package batch sanitizes directories of JSON files and writes a
// Parquet summary of the per-file results.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/segmentio/parquet-go"
	"go.uber.org/zap"

	"github.com/raaihank/datascrub/internal/detect"
	"github.com/raaihank/datascrub/internal/replace"
	"github.com/raaihank/datascrub/internal/sanitize"
)

// Config controls a batch run.
type Config struct {
	// InputDir is scanned (non-recursively) for *.json files.
	InputDir string
	// OutputDir receives one sanitized file per input, same basename.
	OutputDir string
	// Seed makes generated fake values reproducible when non-zero.
	Seed uint64
	// SharedReplacer reuses one replacement cache across all files so a
	// value appearing in several files maps to the same fake everywhere.
	// When false each file gets a fresh cache.
	SharedReplacer bool
	// SummaryFile is the Parquet summary path. Empty disables the summary.
	SummaryFile string
}

// FileSummary is one row of the batch summary.
type FileSummary struct {
	Filename         string `parquet:"filename"`
	Success          bool   `parquet:"success"`
	RecordsProcessed int64  `parquet:"records_processed"`
	FieldsDetected   int64  `parquet:"fields_detected"`
	ReplacementsMade int64  `parquet:"replacements_made"`
	ErrorMessage     string `parquet:"error_message"`
	DurationMillis   int64  `parquet:"duration_ms"`
}

// Result aggregates a completed batch run.
type Result struct {
	FilesProcessed int
	FilesFailed    int
	TotalRecords   int64
	TotalFields    int64
	TotalReplaced  int64
	Duration       time.Duration
	Summaries      []FileSummary
}

// Pipeline runs sanitization over a directory of files
type Pipeline struct {
	detectors []detect.Detector
	config    *Config
	logger    *zap.Logger
}

// NewPipeline creates a new batch pipeline
func NewPipeline(detectors []detect.Detector, config *Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		detectors: detectors,
		config:    config,
		logger:    logger,
	}
}

// Run sanitizes every *.json file in the input directory, in name order,
// and writes the Parquet summary when configured. File-level failures are
// recorded in the summary and do not abort the batch.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	files, err := p.listInputs()
	if err != nil {
		return nil, err
	}

	p.logger.Info("Starting batch run",
		zap.String("input_dir", p.config.InputDir),
		zap.String("output_dir", p.config.OutputDir),
		zap.Int("files", len(files)),
		zap.Bool("shared_replacer", p.config.SharedReplacer),
	)

	var shared *replace.Replacer
	if p.config.SharedReplacer {
		shared = replace.New(p.config.Seed)
	}

	result := &Result{}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		replacer := shared
		if replacer == nil {
			replacer = replace.New(p.config.Seed)
		}
		sanitizer := sanitize.New(p.detectors, replacer, p.logger)

		outputPath := filepath.Join(p.config.OutputDir, filepath.Base(file))

		fileStart := time.Now()
		runResult := sanitizer.SanitizeFile(file, outputPath)
		elapsed := time.Since(fileStart)

		result.FilesProcessed++
		if runResult.Success {
			result.TotalRecords += int64(runResult.RecordsProcessed)
			result.TotalFields += int64(runResult.FieldsDetected)
			result.TotalReplaced += int64(runResult.ReplacementsMade)
		} else {
			result.FilesFailed++
			p.logger.Warn("File failed",
				zap.String("file", file),
				zap.String("error", runResult.ErrorMessage),
			)
		}

		result.Summaries = append(result.Summaries, FileSummary{
			Filename:         filepath.Base(file),
			Success:          runResult.Success,
			RecordsProcessed: int64(runResult.RecordsProcessed),
			FieldsDetected:   int64(runResult.FieldsDetected),
			ReplacementsMade: int64(runResult.ReplacementsMade),
			ErrorMessage:     runResult.ErrorMessage,
			DurationMillis:   elapsed.Milliseconds(),
		})
	}

	result.Duration = time.Since(start)

	if p.config.SummaryFile != "" {
		if err := p.writeSummary(result.Summaries); err != nil {
			return result, fmt.Errorf("failed to write summary: %w", err)
		}
	}

	p.logger.Info("Batch run completed",
		zap.Int("files_processed", result.FilesProcessed),
		zap.Int("files_failed", result.FilesFailed),
		zap.Int64("records", result.TotalRecords),
		zap.Int64("replacements", result.TotalReplaced),
		zap.Duration("duration", result.Duration),
	)

	return result, nil
}

// listInputs returns the *.json files of the input directory sorted by
// name so batch runs are deterministic.
func (p *Pipeline) listInputs() ([]string, error) {
	entries, err := os.ReadDir(p.config.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		files = append(files, filepath.Join(p.config.InputDir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// writeSummary writes per-file results as a Parquet file.
func (p *Pipeline) writeSummary(summaries []FileSummary) error {
	if dir := filepath.Dir(p.config.SummaryFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(p.config.SummaryFile)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[FileSummary](file)
	if _, err := writer.Write(summaries); err != nil {
		writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	p.logger.Info("Batch summary written",
		zap.String("file", p.config.SummaryFile),
		zap.Int("rows", len(summaries)),
	)
	return nil
}
