//go:build !onnx
// +build !onnx

package recognize

import (
	"go.uber.org/zap"
)

// Stub implementation used when the 'onnx' build tag is not set. Callers
// fall back to the rules recognizer when this returns nil.
func NewModelRecognizer(logger *zap.Logger, modelPath string, maxLength int) Recognizer {
	return nil
}
