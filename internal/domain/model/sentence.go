// Package model contains domain models passed between layers.
package model

import "github.com/okian/meetmind/internal/domain/types"

// Sentence is one preprocessed transcript sentence.
// Sentences are produced by an upstream segmenter and never mutated here.
type Sentence struct {
	ID          int      `json:"id" yaml:"id"`
	RawText     string   `json:"raw_text" yaml:"raw_text"`
	CleanedText string   `json:"cleaned_text" yaml:"cleaned_text"`
	Tokens      []string `json:"tokens" yaml:"tokens"`
}

// Entity is a recognised mention within a sentence.
type Entity struct {
	Text string           `json:"text"`
	Type types.EntityType `json:"type"`
	// Start and End are byte offsets into the sentence text.
	Start int `json:"start_char"`
	End   int `json:"end_char"`
}

// Text returns the cleaned text, or the raw text when no cleaned form was supplied.
func (s Sentence) Text() string {
	if s.CleanedText != "" {
		return s.CleanedText
	}
	return s.RawText
}
