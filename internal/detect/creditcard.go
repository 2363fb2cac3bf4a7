package detect

import (
	"regexp"
	"strings"

	"github.com/raaihank/datascrub/internal/pii"
)

// cardPattern matches digit runs in the two canonical card groupings:
// 4-4-4-{3..7} (16-digit cards and longer) and 4-6-5 (15-digit Amex),
// with optional space or dash separators between groups.
var cardPattern = regexp.MustCompile(`\b(?:\d{4}[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{3,7}|\d{4}[\s\-]?\d{6}[\s\-]?\d{5})\b`)

var cardSeparators = strings.NewReplacer(" ", "", "-", "")

// CreditCardDetector finds payment card numbers. Candidates that fail the
// Luhn checksum are not PII at all and produce no detection, which keeps
// arbitrary numeric fields from being flagged.
type CreditCardDetector struct{}

// NewCreditCardDetector creates a credit card detector.
func NewCreditCardDetector() *CreditCardDetector {
	return &CreditCardDetector{}
}

// Detect returns one detection per Luhn-valid card number in text.
func (d *CreditCardDetector) Detect(text, fieldName string) []pii.Detection {
	if text == "" {
		return nil
	}

	var results []pii.Detection
	for _, loc := range cardPattern.FindAllStringIndex(text, -1) {
		value := text[loc[0]:loc[1]]
		digits := cardSeparators.Replace(value)

		if len(digits) < 13 || len(digits) > 19 {
			continue
		}
		if !LuhnValid(digits) {
			continue
		}

		results = append(results, pii.Detection{
			Type:       pii.TypeCreditCard,
			Value:      value,
			Confidence: 1.0,
			Start:      loc[0],
			End:        loc[1],
		})
	}

	return results
}
