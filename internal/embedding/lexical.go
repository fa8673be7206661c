package embedding

import (
	"strings"
	"unicode/utf8"
)

// LexicalDimension is the fixed output vector length of the lexical encoder.
const LexicalDimension = 50

// fashionKeywords is the vocabulary checked for presence when encoding.
// One vector slot per keyword, in this order.
var fashionKeywords = [...]string{
	"fashion", "style", "trend", "outfit", "dress", "casual", "formal",
	"summer", "winter", "spring", "autumn", "fall", "color", "pattern",
	"vintage", "modern", "classic", "bohemian", "minimalist", "chic",
}

// LexicalEncoder produces deterministic feature vectors from text without any
// external model: keyword presence indicators followed by scaled length,
// whitespace and punctuation statistics, zero-padded to LexicalDimension.
// Encoding is pure and never fails; the empty string yields the all-default
// vector.
type LexicalEncoder struct{}

// NewLexicalEncoder creates the built-in lexical feature encoder.
func NewLexicalEncoder() *LexicalEncoder {
	return &LexicalEncoder{}
}

// Dimension returns LexicalDimension.
func (e *LexicalEncoder) Dimension() int {
	return LexicalDimension
}

// Embed converts text into its feature vector. The error is always nil and
// exists to satisfy EmbeddingService.
func (e *LexicalEncoder) Embed(text string) ([]float64, error) {
	lower := strings.ToLower(text)

	vec := make([]float64, 0, LexicalDimension)
	for _, kw := range fashionKeywords {
		if strings.Contains(lower, kw) {
			vec = append(vec, 1.0)
		} else {
			vec = append(vec, 0.0)
		}
	}

	vec = append(vec, float64(utf8.RuneCountInString(text))/1000.0)
	vec = append(vec, float64(strings.Count(text, " "))/100.0)
	vec = append(vec, float64(strings.Count(text, ","))/10.0)

	for len(vec) < LexicalDimension {
		vec = append(vec, 0.0)
	}
	return vec[:LexicalDimension], nil
}

// EmbedBatch converts multiple texts into feature vectors.
func (e *LexicalEncoder) EmbedBatch(texts []string) ([][]float64, error) {
	embeddings := make([][]float64, len(texts))
	for i, text := range texts {
		vec, _ := e.Embed(text)
		embeddings[i] = vec
	}
	return embeddings, nil
}
