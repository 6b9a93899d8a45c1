package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"

	"mindemotion-core/internal/domain/entity"
)

// Label order is fixed by the training data and must never change.
var emotionLabels = []string{"sadness", "joy", "love", "anger", "fear", "surprise"}

const (
	emotionWeightsFile = "emotion_weights.json"
	emotionVocabFile   = "emotion_vocab.json"
)

// emotionModelFile is the on-disk artifact layout.
type emotionModelFile struct {
	MaxLen    int       `json:"max_len"`
	Dim       int       `json:"dim"`
	VocabSize int       `json:"vocab_size"`
	Embedding []float64 `json:"embedding"` // (vocab_size x dim), row-major
	W         []float64 `json:"w"`         // (dim x n_classes), row-major
	B         []float64 `json:"b"`         // (n_classes)
}

// EmotionModel classifies text into one of six emotions: token embedding
// lookup, mean pooling over non-padding positions, a linear head and a
// softmax over the class logits. Inference is fully deterministic.
type EmotionModel struct {
	tokenizer *Tokenizer
	maxLen    int
	embedding *mat.Dense // (vocab_size x dim)
	w         *mat.Dense // (dim x n_classes)
	b         *mat.VecDense
}

func NewEmotionModel(tokenizer *Tokenizer, maxLen int, embedding, w *mat.Dense, b *mat.VecDense) *EmotionModel {
	return &EmotionModel{tokenizer: tokenizer, maxLen: maxLen, embedding: embedding, w: w, b: b}
}

// LoadEmotionModel reads the weight and vocabulary artifacts from dir.
func LoadEmotionModel(dir string) (*EmotionModel, error) {
	raw, err := os.ReadFile(filepath.Join(dir, emotionWeightsFile))
	if err != nil {
		return nil, err
	}
	var f emotionModelFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}

	nClasses := len(emotionLabels)
	if len(f.Embedding) != f.VocabSize*f.Dim {
		return nil, fmt.Errorf("emotion model: embedding dimensions mismatch")
	}
	if len(f.W) != f.Dim*nClasses {
		return nil, fmt.Errorf("emotion model: W dimensions mismatch")
	}
	if len(f.B) != nClasses {
		return nil, fmt.Errorf("emotion model: B dimensions mismatch")
	}
	if f.MaxLen <= 0 {
		return nil, fmt.Errorf("emotion model: max_len must be positive")
	}

	tokenizer, err := LoadTokenizer(filepath.Join(dir, emotionVocabFile))
	if err != nil {
		return nil, err
	}

	return &EmotionModel{
		tokenizer: tokenizer,
		maxLen:    f.MaxLen,
		embedding: mat.NewDense(f.VocabSize, f.Dim, f.Embedding),
		w:         mat.NewDense(f.Dim, nClasses, f.W),
		b:         mat.NewVecDense(nClasses, f.B),
	}, nil
}

// Classify returns the argmax emotion with the full probability
// distribution over all six labels.
func (m *EmotionModel) Classify(text string) (*entity.EmotionResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, entity.ErrEmptyText
	}

	ids := m.tokenizer.Encode(text, m.maxLen)

	// Mean-pool the embeddings of non-padding positions.
	_, dim := m.embedding.Dims()
	feat := mat.NewVecDense(dim, nil)
	count := 0
	for _, id := range ids {
		if id == padID {
			continue
		}
		feat.AddVec(feat, m.embedding.RowView(id))
		count++
	}
	if count > 0 {
		feat.ScaleVec(1/float64(count), feat)
	}

	nClasses := len(emotionLabels)
	logits := mat.NewVecDense(nClasses, nil)
	logits.MulVec(m.w.T(), feat)
	logits.AddVec(logits, m.b)

	probs := softmax(logits.RawVector().Data)

	maxIdx := 0
	for i := 1; i < nClasses; i++ {
		if probs[i] > probs[maxIdx] {
			maxIdx = i
		}
	}

	all := make(map[string]float64, nClasses)
	for i, label := range emotionLabels {
		all[label] = probs[i]
	}

	return &entity.EmotionResult{
		Text:             text,
		Emotion:          emotionLabels[maxIdx],
		Confidence:       probs[maxIdx],
		AllProbabilities: all,
	}, nil
}

// softmax with the max-shift trick for numerical stability.
func softmax(logits []float64) []float64 {
	maxVal := logits[0]
	for _, v := range logits[1:] {
		if v > maxVal {
			maxVal = v
		}
	}

	out := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		e := math.Exp(v - maxVal)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
