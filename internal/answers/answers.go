// Package answers reads answer sets from files and command-line assignments.
package answers

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/cremis/internal/assessment"
)

// File holds a loaded answers file with its content and metadata.
type File struct {
	FilePath string
	Raw      string
	Hash     string
	Answers  assessment.AnswerSet
}

// Load reads an answers file and computes its SHA-256 hash.
// Both YAML and JSON are accepted.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("answers.Load: %w", err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("answers.Load: %s: %w", path, err)
	}
	h := sha256.Sum256(data)
	return &File{
		FilePath: path,
		Raw:      string(data),
		Hash:     fmt.Sprintf("sha256:%x", h),
		Answers:  set,
	}, nil
}

// Parse decodes either a flat mapping of question ID to weight or the
// same mapping nested under a single "answers" key.
func Parse(data []byte) (assessment.AnswerSet, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	set := make(assessment.AnswerSet)
	if node, ok := doc["answers"]; ok && len(doc) == 1 {
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("answers.Parse: answers: expected a mapping of question ID to weight")
		}
		if err := node.Decode(&set); err != nil {
			return nil, err
		}
		return set, nil
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	return set, nil
}

// ParseAssignments parses "id=weight" items. A later item for the same
// question replaces an earlier one.
func ParseAssignments(items []string) (assessment.AnswerSet, error) {
	set := make(assessment.AnswerSet, len(items))
	for _, item := range items {
		id, val, ok := strings.Cut(item, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("answers.ParseAssignments: %q: expected id=weight", item)
		}
		w, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("answers.ParseAssignments: %q: %w", item, err)
		}
		set[id] = w
	}
	return set, nil
}

// Merge returns base with overrides applied on top. Neither input is modified.
func Merge(base, overrides assessment.AnswerSet) assessment.AnswerSet {
	out := make(assessment.AnswerSet, len(base)+len(overrides))
	for id, w := range base {
		out[id] = w
	}
	for id, w := range overrides {
		out[id] = w
	}
	return out
}
