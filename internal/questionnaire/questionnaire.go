// Package questionnaire handles loading built-in and on-disk questionnaire definitions.
package questionnaire

import (
	"bytes"
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultName is the built-in questionnaire used when none is specified.
const DefaultName = "cremis"

// Questionnaire is a closed set of single-select questions.
type Questionnaire struct {
	Name        string     `yaml:"name" json:"name"`
	Version     int        `yaml:"version" json:"version"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Questions   []Question `yaml:"questions" json:"questions"`
	Tiers       []Band     `yaml:"tiers,omitempty" json:"tiers,omitempty"`

	// Hash is the sha256 of the source bytes; empty for hand-built values.
	Hash string `yaml:"-" json:"-"`
}

// Question is one prompt with mutually exclusive options.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	Options []Option `yaml:"options" json:"options"`
}

// Option is a selectable answer and the weight it contributes to the score.
type Option struct {
	Label  string `yaml:"label" json:"label"`
	Weight int    `yaml:"weight" json:"weight"`
}

// Band is a tier threshold as written in a questionnaire file.
// The assessment package turns these into its ladder.
type Band struct {
	Min     int    `yaml:"min" json:"min"`
	Tier    string `yaml:"tier" json:"tier"`
	Color   string `yaml:"color" json:"color"`
	Message string `yaml:"message" json:"message"`
}

// LoadBuiltin loads a built-in questionnaire by name.
func LoadBuiltin(name string) (*Questionnaire, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("questionnaire.LoadBuiltin: unknown questionnaire %q: %w", name, err)
	}
	q, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("questionnaire.LoadBuiltin: parse %q: %w", name, err)
	}
	return q, nil
}

// Load reads a questionnaire definition from a YAML or JSON file.
func Load(path string) (*Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("questionnaire.Load: %w", err)
	}
	q, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("questionnaire.Load: %s: %w", path, err)
	}
	return q, nil
}

// Parse decodes a questionnaire definition. Unknown fields are rejected.
func Parse(data []byte) (*Questionnaire, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var q Questionnaire
	if err := dec.Decode(&q); err != nil {
		return nil, err
	}
	h := sha256.Sum256(data)
	q.Hash = fmt.Sprintf("sha256:%x", h)
	return &q, nil
}

// Resolve loads ref as a file path when such a file exists, otherwise as a
// built-in name. An empty ref selects DefaultName.
func Resolve(ref string) (*Questionnaire, error) {
	if ref == "" {
		ref = DefaultName
	}
	if _, err := os.Stat(ref); err == nil {
		return Load(ref)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("questionnaire.Resolve: %w", err)
	}
	return LoadBuiltin(ref)
}

// List returns the names of all available built-in questionnaires.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// Question returns the question with the given ID.
func (q *Questionnaire) Question(id string) (Question, bool) {
	for _, qu := range q.Questions {
		if qu.ID == id {
			return qu, true
		}
	}
	return Question{}, false
}

// IDs returns question IDs in display order.
func (q *Questionnaire) IDs() []string {
	ids := make([]string, len(q.Questions))
	for i, qu := range q.Questions {
		ids[i] = qu.ID
	}
	return ids
}

// MaxScore is the highest reachable score: the largest weight of every question summed.
func (q *Questionnaire) MaxScore() int {
	total := 0
	for _, qu := range q.Questions {
		best := 0
		for i, o := range qu.Options {
			if i == 0 || o.Weight > best {
				best = o.Weight
			}
		}
		total += best
	}
	return total
}

// Offers reports whether any option of the question carries weight w.
func (qu Question) Offers(w int) bool {
	for _, o := range qu.Options {
		if o.Weight == w {
			return true
		}
	}
	return false
}
