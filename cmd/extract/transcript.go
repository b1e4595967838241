package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/meetmind/internal/domain/model"
)

// transcriptFile accepts either a bare sentence list or {sentences: [...]}.
type transcriptFile struct {
	Sentences []model.Sentence `yaml:"sentences"`
}

// loadTranscript reads sentences from a YAML or JSON file.
func loadTranscript(path string) ([]model.Sentence, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(node.Content) == 0 {
		return []model.Sentence{}, nil
	}

	root := node.Content[0]
	var sentences []model.Sentence
	switch root.Kind {
	case yaml.SequenceNode:
		err = root.Decode(&sentences)
	case yaml.MappingNode:
		var tf transcriptFile
		err = root.Decode(&tf)
		sentences = tf.Sentences
	default:
		err = fmt.Errorf("expected a sentence list or a mapping with sentences")
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sentences == nil {
		sentences = []model.Sentence{}
	}
	return sentences, nil
}
