package model

import (
	"encoding/json"
	"os"
	"strings"
	"unicode"
)

// Reserved token ids. Every vocabulary entry must sit above these.
const (
	padID = 0
	unkID = 1
)

// Tokenizer maps raw text onto a fixed-length id sequence: lowercase,
// split on non-alphanumeric runes, vocabulary lookup with an unknown
// fallback, then truncate or pad to the requested length.
type Tokenizer struct {
	vocab map[string]int
}

func NewTokenizer(vocab map[string]int) *Tokenizer {
	return &Tokenizer{vocab: vocab}
}

// LoadTokenizer reads a token->id vocabulary from a JSON file.
func LoadTokenizer(path string) (*Tokenizer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var vocab map[string]int
	if err := json.Unmarshal(raw, &vocab); err != nil {
		return nil, err
	}
	return &Tokenizer{vocab: vocab}, nil
}

func (t *Tokenizer) Encode(text string, maxLen int) []int {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	ids := make([]int, 0, maxLen)
	for _, w := range words {
		if len(ids) == maxLen {
			break
		}
		id, ok := t.vocab[w]
		if !ok {
			id = unkID
		}
		ids = append(ids, id)
	}
	for len(ids) < maxLen {
		ids = append(ids, padID)
	}
	return ids
}
