package detect

import (
	"regexp"
	"sort"

	"github.com/raaihank/datascrub/internal/pii"
)

// phonePatterns cover, in order: international numbers with grouped digit
// runs (+1-234-567-8900, +44 20 7946 0958), parenthesized area codes
// ((234) 567-8900), separator-delimited ten-digit numbers (234-567-8900,
// 234.567.8900) and bare digit runs of 10-15 digits.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,4}`),
	regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.\s]?\d{4}`),
	regexp.MustCompile(`\b\d{3}[-.\s]\d{3}[-.\s]\d{4}\b`),
	regexp.MustCompile(`\b\d{10,15}\b`),
}

// PhoneDetector finds phone numbers in a handful of common formats.
//
// Several of the patterns can match overlapping substrings of the same
// number (the bare-digit pattern matches inside a parenthesized one), so
// candidates from all patterns are pooled and resolved greedily,
// preferring the longest match at each start position.
type PhoneDetector struct{}

// NewPhoneDetector creates a phone detector.
func NewPhoneDetector() *PhoneDetector {
	return &PhoneDetector{}
}

type phoneMatch struct {
	start, end int
	value      string
}

// Detect returns non-overlapping phone detections sorted by position.
// Candidates whose digit count falls outside 10-15 are discarded.
func (d *PhoneDetector) Detect(text, fieldName string) []pii.Detection {
	if text == "" {
		return nil
	}

	var candidates []phoneMatch
	for _, pattern := range phonePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			value := text[loc[0]:loc[1]]
			if n := countDigits(value); n < 10 || n > 15 {
				continue
			}
			candidates = append(candidates, phoneMatch{start: loc[0], end: loc[1], value: value})
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	// Longest-first within equal start positions, then greedy acceptance.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].end-candidates[i].start > candidates[j].end-candidates[j].start
	})

	var accepted []phoneMatch
	for _, c := range candidates {
		overlaps := false
		for _, a := range accepted {
			if c.start < a.end && a.start < c.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, c)
		}
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].start < accepted[j].start })

	results := make([]pii.Detection, 0, len(accepted))
	for _, m := range accepted {
		results = append(results, pii.Detection{
			Type:       pii.TypePhone,
			Value:      m.value,
			Confidence: 1.0,
			Start:      m.start,
			End:        m.end,
		})
	}

	return results
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
