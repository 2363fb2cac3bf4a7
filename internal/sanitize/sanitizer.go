// Package sanitize walks record trees, runs the configured detectors over
// every string leaf, and splices in replacements while leaving all other
// structure byte-for-byte unchanged.
package sanitize

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/raaihank/datascrub/internal/detect"
	"github.com/raaihank/datascrub/internal/pii"
	"github.com/raaihank/datascrub/internal/replace"
)

// Sanitizer orchestrates detection and replacement for one run. It owns
// one detector list and one Replacer; construct a new Sanitizer (or at
// least a new Replacer) per run unless cross-file consistency of
// replacements is wanted.
type Sanitizer struct {
	detectors []detect.Detector
	replacer  *replace.Replacer
	logger    *zap.Logger

	fieldsDetected   int
	replacementsMade int
}

// New creates a sanitizer from a detector list and a replacer.
func New(detectors []detect.Detector, replacer *replace.Replacer, logger *zap.Logger) *Sanitizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sanitizer{
		detectors: detectors,
		replacer:  replacer,
		logger:    logger,
	}
}

// Stats returns the counters accumulated since the last reset.
func (s *Sanitizer) Stats() pii.Stats {
	return pii.Stats{
		FieldsDetected:   s.fieldsDetected,
		ReplacementsMade: s.replacementsMade,
	}
}

// ResetStats zeroes the per-run counters.
func (s *Sanitizer) ResetStats() {
	s.fieldsDetected = 0
	s.replacementsMade = 0
}

// SanitizeRecords sanitizes each record in order and returns the rebuilt
// slice together with the counters accumulated so far.
func (s *Sanitizer) SanitizeRecords(records []Record) ([]Record, pii.Stats) {
	sanitized := make([]Record, 0, len(records))
	for _, record := range records {
		sanitized = append(sanitized, s.sanitizeRecord(record))
	}
	return sanitized, s.Stats()
}

func (s *Sanitizer) sanitizeRecord(record Record) Record {
	out := make(Record, 0, len(record))
	for _, m := range record {
		out = append(out, Member{Key: m.Key, Value: s.sanitizeValue(m.Value, m.Key)})
	}
	return out
}

// sanitizeValue re-dispatches on the value's runtime kind. Strings get the
// detection step with the enclosing key as field-name context; nested
// records recurse with each nested key as its own context; sequence
// elements all share the containing field's context; everything else
// passes through unchanged.
func (s *Sanitizer) sanitizeValue(value any, fieldName string) any {
	switch v := value.(type) {
	case string:
		return s.sanitizeString(v, fieldName)
	case Record:
		return s.sanitizeRecord(v)
	case []any:
		out := make([]any, len(v))
		for i, el := range v {
			out[i] = s.sanitizeValue(el, fieldName)
		}
		return out
	default:
		return value
	}
}

// sanitizeString pools detections from every detector, resolves
// cross-detector overlaps preferring the longest match, and splices the
// replacements in right-to-left so earlier splices cannot shift the
// offsets of later ones. Detections without a usable span fall back to a
// first-occurrence substring replacement.
//
// Overlap resolution matters here: the name recognizer can fire on the
// local part of an email address, and splicing both would corrupt the
// string. The longer span wins, so the email replacement covers the
// embedded name hit.
func (s *Sanitizer) sanitizeString(text, fieldName string) string {
	var detections []pii.Detection
	for _, d := range s.detectors {
		detections = append(detections, d.Detect(text, fieldName)...)
	}
	detections = resolveOverlaps(detections)

	if len(detections) == 0 {
		return text
	}

	s.fieldsDetected++

	sort.SliceStable(detections, func(i, j int) bool {
		return detections[i].Start > detections[j].Start
	})

	sanitized := text
	for _, d := range detections {
		fake := s.replacer.Replace(d)

		if d.HasSpan() && d.End <= len(sanitized) {
			sanitized = sanitized[:d.Start] + fake + sanitized[d.End:]
		} else {
			sanitized = strings.Replace(sanitized, d.Value, fake, 1)
		}

		s.replacementsMade++
	}

	s.logger.Debug("PII replaced in field",
		zap.String("field", fieldName),
		zap.Int("detections", len(detections)),
	)

	return sanitized
}

// resolveOverlaps drops detections whose span overlaps an already accepted
// one, preferring earlier starts and, at equal starts, longer matches.
// Spanless detections always survive; they replace by substring and cannot
// collide positionally.
func resolveOverlaps(detections []pii.Detection) []pii.Detection {
	if len(detections) < 2 {
		return detections
	}

	sort.SliceStable(detections, func(i, j int) bool {
		if detections[i].Start != detections[j].Start {
			return detections[i].Start < detections[j].Start
		}
		return detections[i].End-detections[i].Start > detections[j].End-detections[j].Start
	})

	var accepted []pii.Detection
	for _, d := range detections {
		if !d.HasSpan() {
			accepted = append(accepted, d)
			continue
		}
		overlaps := false
		for _, a := range accepted {
			if a.HasSpan() && d.Start < a.End && a.Start < d.End {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, d)
		}
	}
	return accepted
}
