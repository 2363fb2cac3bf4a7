package detect

import (
	"strings"

	"github.com/raaihank/datascrub/internal/pii"
	"github.com/raaihank/datascrub/internal/recognize"
)

// Field-name hint lists, matched after lowercasing and stripping
// underscores and dashes ("first_name" and "First-Name" both hit
// "firstname").
var (
	fullNameHints  = []string{"fullname", "name"}
	firstNameHints = []string{"firstname", "fname", "givenname", "first"}
	lastNameHints  = []string{"lastname", "lname", "surname", "familyname", "last"}
)

var hintNormalizer = strings.NewReplacer("_", "", "-", "")

// NameDetector finds person names using an injected entity recognizer and
// classifies each hit as a full, first, or last name. Classification uses
// field-name hints first and falls back to word count; a single bare name
// with no hint defaults to a first name.
type NameDetector struct {
	recognizer recognize.Recognizer
}

// NewNameDetector creates a name detector backed by the given recognizer.
func NewNameDetector(recognizer recognize.Recognizer) *NameDetector {
	return &NameDetector{recognizer: recognizer}
}

// Detect returns one detection per person entity the recognizer reports,
// passing the recognizer's confidence through unmodified.
func (d *NameDetector) Detect(text, fieldName string) []pii.Detection {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var results []pii.Detection
	for _, span := range d.recognizer.Recognize(text) {
		if span.Start < 0 || span.End > len(text) || span.End <= span.Start {
			continue
		}
		value := text[span.Start:span.End]
		results = append(results, pii.Detection{
			Type:       classifyName(value, fieldName),
			Value:      value,
			Confidence: span.Score,
			Start:      span.Start,
			End:        span.End,
		})
	}

	return results
}

func classifyName(value, fieldName string) pii.Type {
	field := hintNormalizer.Replace(strings.ToLower(fieldName))

	for _, hint := range fullNameHints {
		if field == hint {
			return pii.TypeFullName
		}
	}
	for _, hint := range firstNameHints {
		if field == hint {
			return pii.TypeFirstName
		}
	}
	for _, hint := range lastNameHints {
		if field == hint {
			return pii.TypeLastName
		}
	}

	if len(strings.Fields(value)) >= 2 {
		return pii.TypeFullName
	}
	return pii.TypeFirstName
}
