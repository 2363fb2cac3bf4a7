package detect

import (
	"regexp"

	"github.com/raaihank/datascrub/internal/pii"
)

// emailPattern matches local@domain.tld with a word boundary on both sides.
// Local part allows alphanumerics plus ._%+- and the TLD must be at least
// two alphabetic characters.
var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// EmailDetector finds email addresses regardless of the field they appear in.
type EmailDetector struct{}

// NewEmailDetector creates an email detector.
func NewEmailDetector() *EmailDetector {
	return &EmailDetector{}
}

// Detect returns one detection per email address in text, in left-to-right
// order. A regex match is deterministic, so confidence is always 1.0.
func (d *EmailDetector) Detect(text, fieldName string) []pii.Detection {
	if text == "" {
		return nil
	}

	var results []pii.Detection
	for _, loc := range emailPattern.FindAllStringIndex(text, -1) {
		results = append(results, pii.Detection{
			Type:       pii.TypeEmail,
			Value:      text[loc[0]:loc[1]],
			Confidence: 1.0,
			Start:      loc[0],
			End:        loc[1],
		})
	}

	return results
}
