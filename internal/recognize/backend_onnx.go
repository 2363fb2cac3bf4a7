//go:build onnx
// +build onnx

package recognize

import (
	"math"
	"os"
	"strings"
	"sync"
	"unicode"

	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"
)

// personLabel is the class index a token-classification NER model assigns
// to person tokens in the conventional {O, PER, ORG, LOC, MISC} label set.
const personLabel = 1

// minModelScore filters out low-confidence person tokens.
const minModelScore = 0.5

// ModelBackend implements Recognizer using an ONNX token-classification
// model (via yalue/onnxruntime_go). Requires build tag 'onnx'.
type ModelBackend struct {
	session    *ort.DynamicAdvancedSession
	vocab      map[string]int64
	unkID      int64
	maxLength  int
	inputNames []string
	logger     *zap.Logger
	ready      bool
	mu         sync.Mutex
}

// NewModelRecognizer initializes the ONNX backend. Returns nil on any
// initialization failure so callers can fall back to the rules engine.
func NewModelRecognizer(logger *zap.Logger, modelPath string, maxLength int) Recognizer {
	if shlib := os.Getenv("ONNXRUNTIME_SHARED_LIB"); shlib != "" {
		ort.SetSharedLibraryPath(shlib)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		logger.Error("ONNX Runtime environment init failed", zap.Error(err))
		return nil
	}

	inputsInfo, outputsInfo, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		logger.Error("Failed to inspect ONNX model IO", zap.Error(err), zap.String("model", modelPath))
		return nil
	}
	if len(outputsInfo) == 0 {
		logger.Error("ONNX model reports no outputs", zap.String("model", modelPath))
		return nil
	}

	inputNames := make([]string, 0, len(inputsInfo))
	for _, ii := range inputsInfo {
		inputNames = append(inputNames, ii.Name)
	}

	sess, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, []string{outputsInfo[0].Name}, nil)
	if err != nil {
		logger.Error("ONNX Runtime session creation failed", zap.Error(err), zap.String("model", modelPath))
		return nil
	}

	vocab, unkID, err := loadVocab(modelPath + ".vocab")
	if err != nil {
		logger.Error("Failed to load model vocabulary", zap.Error(err), zap.String("model", modelPath))
		sess.Destroy()
		return nil
	}

	logger.Info("ONNX person recognizer ready",
		zap.String("model", modelPath),
		zap.Strings("inputs", inputNames),
		zap.Int("vocab_size", len(vocab)))

	return &ModelBackend{
		session:    sess,
		vocab:      vocab,
		unkID:      unkID,
		maxLength:  maxLength,
		inputNames: inputNames,
		logger:     logger,
		ready:      true,
	}
}

// loadVocab reads a newline-delimited vocabulary file mapping each line to
// its row index, the format exported alongside token-classification models.
func loadVocab(path string) (map[string]int64, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	vocab := make(map[string]int64)
	unkID := int64(0)
	for i, line := range strings.Split(string(data), "\n") {
		word := strings.TrimRight(line, "\r")
		if word == "" {
			continue
		}
		vocab[word] = int64(i)
		if word == "[UNK]" {
			unkID = int64(i)
		}
	}
	return vocab, unkID, nil
}

// Recognize tokenizes text on word boundaries, runs the model and merges
// consecutive person-labelled tokens into spans.
func (b *ModelBackend) Recognize(text string) []Span {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready || b.session == nil {
		return nil
	}

	words := splitWords(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) > b.maxLength {
		words = words[:b.maxLength]
	}

	ids := make([]int64, len(words))
	mask := make([]int64, len(words))
	for i, w := range words {
		id, ok := b.vocab[strings.ToLower(w.text)]
		if !ok {
			id = b.unkID
		}
		ids[i] = id
		mask[i] = 1
	}

	shape := ort.NewShape(1, int64(len(words)))
	idsTensor, err := ort.NewTensor[int64](shape, ids)
	if err != nil {
		b.logger.Error("Failed to create input tensor", zap.Error(err))
		return nil
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor[int64](shape, mask)
	if err != nil {
		b.logger.Error("Failed to create mask tensor", zap.Error(err))
		return nil
	}
	defer maskTensor.Destroy()

	inputs := make([]ort.Value, 0, len(b.inputNames))
	for _, name := range b.inputNames {
		if strings.Contains(strings.ToLower(name), "mask") {
			inputs = append(inputs, maskTensor)
		} else {
			inputs = append(inputs, idsTensor)
		}
	}

	outputs := make([]ort.Value, 1)
	if err := b.session.Run(inputs, outputs); err != nil {
		b.logger.Error("ONNX inference failed", zap.Error(err))
		return nil
	}
	defer func() {
		if outputs[0] != nil {
			_ = outputs[0].Destroy()
		}
	}()

	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		b.logger.Error("Unexpected ONNX output type")
		return nil
	}

	data := logits.GetData()
	outShape := logits.GetShape()
	if len(outShape) != 3 || int(outShape[1]) != len(words) {
		b.logger.Error("Unexpected ONNX output shape")
		return nil
	}
	classes := int(outShape[2])

	// Merge consecutive person-labelled words into one span per run.
	var spans []Span
	runStart, runEnd := -1, -1
	runScore := 1.0
	flush := func() {
		if runStart >= 0 {
			spans = append(spans, Span{Start: runStart, End: runEnd, Score: runScore})
			runStart, runEnd, runScore = -1, -1, 1.0
		}
	}
	for i := range words {
		label, score := argmaxSoftmax(data[i*classes:(i+1)*classes])
		if label == personLabel && score >= minModelScore {
			if runStart < 0 {
				runStart = words[i].start
				runScore = score
			} else if score < runScore {
				runScore = score
			}
			runEnd = words[i].end
			continue
		}
		flush()
	}
	flush()

	return spans
}

// Close releases session and environment resources.
func (b *ModelBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session != nil {
		b.session.Destroy()
		b.session = nil
	}
	ort.DestroyEnvironment()
	b.ready = false
	return nil
}

type word struct {
	start, end int
	text       string
}

func splitWords(text string) []word {
	var words []word
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			words = append(words, word{start: start, end: i, text: text[start:i]})
			start = -1
		}
	}
	if start >= 0 {
		words = append(words, word{start: start, end: len(text), text: text[start:]})
	}
	return words
}

// argmaxSoftmax returns the winning class and its softmax probability.
func argmaxSoftmax(logits []float32) (int, float64) {
	if len(logits) == 0 {
		return 0, 0
	}
	best := 0
	for i, v := range logits {
		if v > logits[best] {
			best = i
		}
	}
	var sum float64
	for _, v := range logits {
		sum += math.Exp(float64(v - logits[best]))
	}
	return best, 1.0 / sum
}
