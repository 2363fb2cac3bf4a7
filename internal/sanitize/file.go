package sanitize

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/raaihank/datascrub/internal/pii"
)

// SanitizeData sanitizes a JSON array of records given as bytes and
// returns the sanitized bytes plus the run summary. Failures are reported
// through the result, never raised: on failure the output is nil and all
// counters are zero.
func (s *Sanitizer) SanitizeData(data []byte) (out []byte, result pii.Result) {
	s.ResetStats()

	// Anything unexpected inside detection or replacement becomes a
	// failed result at this boundary so callers never see a panic.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Sanitization panicked", zap.Any("cause", r))
			out = nil
			result = failure(fmt.Sprintf("unexpected error during sanitization: %v", r))
		}
	}()

	records, err := DecodeRecords(data)
	if err != nil {
		return nil, failure(err.Error())
	}

	sanitized, stats := s.SanitizeRecords(records)

	encoded, err := EncodeRecords(sanitized)
	if err != nil {
		return nil, failure(fmt.Sprintf("failed to encode sanitized records: %v", err))
	}

	return encoded, pii.Result{
		Success:          true,
		RecordsProcessed: len(records),
		FieldsDetected:   stats.FieldsDetected,
		ReplacementsMade: stats.ReplacementsMade,
	}
}

// SanitizeFile reads a JSON file, sanitizes it, and writes the result to
// outputPath. Missing parent directories of the output are created; a
// failed run writes nothing.
func (s *Sanitizer) SanitizeFile(inputPath, outputPath string) pii.Result {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		s.ResetStats()
		if os.IsNotExist(err) {
			return failure(fmt.Sprintf("input file not found: %s", inputPath))
		}
		return failure(fmt.Sprintf("error reading file %s: %v", inputPath, err))
	}

	out, result := s.SanitizeData(data)
	if !result.Success {
		return result
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return failure(fmt.Sprintf("cannot create output directory for %s: %v", outputPath, err))
		}
	}

	if err := os.WriteFile(outputPath, append(out, '\n'), 0o644); err != nil {
		return failure(fmt.Sprintf("error writing output file %s: %v", outputPath, err))
	}

	s.logger.Info("File sanitized",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("records", result.RecordsProcessed),
		zap.Int("fields_detected", result.FieldsDetected),
		zap.Int("replacements", result.ReplacementsMade),
	)

	return result
}

func failure(message string) pii.Result {
	return pii.Result{Success: false, ErrorMessage: message}
}
