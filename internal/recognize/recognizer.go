// Package recognize provides the person-entity recognition capability used
// by the name detector. Recognizers are pluggable: the default engine is a
// dependency-free rules recognizer, and builds with the 'onnx' tag can load
// a token-classification model behind the same interface.
package recognize

// Span marks a person entity inside a scanned string as the half-open
// offset range [Start, End) with a recognizer-specific confidence score.
type Span struct {
	Start int
	End   int
	Score float64
}

// Recognizer locates person names in free-form text.
//
// Recognize never fails: text without person entities yields an empty
// slice. Implementations must be safe for repeated calls on the same
// instance within a single run.
type Recognizer interface {
	Recognize(text string) []Span
}
