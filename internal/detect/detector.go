package detect

import "github.com/raaihank/datascrub/internal/pii"

// Detector finds PII inside free-form text. Implementations are stateless
// value scanners except for any recognizer state they hold internally.
//
// The fieldName argument is the key under which the text was found in its
// enclosing record. Detectors never require it to find PII, but may use it
// to disambiguate the PII type (the name detector does).
//
// Detect never fails: text that contains no recognizable PII yields an
// empty slice, not an error.
type Detector interface {
	Detect(text, fieldName string) []pii.Detection
}
