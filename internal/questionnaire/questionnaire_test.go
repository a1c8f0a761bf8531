package questionnaire

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadBuiltinCremis(t *testing.T) {
	q, err := LoadBuiltin("cremis")
	if err != nil {
		t.Fatalf("LoadBuiltin(cremis): %v", err)
	}
	if q.Title != "CREMIS Assessment Form" {
		t.Errorf("title = %q", q.Title)
	}
	if !strings.HasPrefix(q.Hash, "sha256:") {
		t.Errorf("hash = %q, want sha256 prefix", q.Hash)
	}

	want := map[string][]int{
		"q1": {3, 2, 1, 0},
		"q2": {1, 0},
		"q3": {0, 1, 2},
		"q4": {0, 1, 2},
		"q5": {0, 1, 3},
		"q6": {0, 1, 2},
	}
	if len(q.Questions) != len(want) {
		t.Fatalf("got %d questions, want %d", len(q.Questions), len(want))
	}
	for _, qu := range q.Questions {
		weights, ok := want[qu.ID]
		if !ok {
			t.Errorf("unexpected question %q", qu.ID)
			continue
		}
		if qu.Text == "" {
			t.Errorf("%s has no text", qu.ID)
		}
		if len(qu.Options) != len(weights) {
			t.Errorf("%s: got %d options, want %d", qu.ID, len(qu.Options), len(weights))
			continue
		}
		for i, w := range weights {
			if qu.Options[i].Weight != w {
				t.Errorf("%s option %d weight = %d, want %d", qu.ID, i, qu.Options[i].Weight, w)
			}
			if qu.Options[i].Label == "" {
				t.Errorf("%s option %d has empty label", qu.ID, i)
			}
		}
	}

	q1, _ := q.Question("q1")
	if q1.Options[0].Label != "Sleep on the street" {
		t.Errorf("q1 first label = %q", q1.Options[0].Label)
	}
	q2, _ := q.Question("q2")
	if q2.Options[0].Label != "Yes" || q2.Options[1].Label != "No" {
		t.Errorf("q2 labels = %q, %q", q2.Options[0].Label, q2.Options[1].Label)
	}
	if len(q.Tiers) != 4 {
		t.Errorf("got %d tiers, want 4", len(q.Tiers))
	}
}

func TestLoadBuiltinNotFound(t *testing.T) {
	_, err := LoadBuiltin("nonexistent")
	if err == nil {
		t.Error("expected error for unknown questionnaire")
	}
}

func TestList(t *testing.T) {
	names, err := List()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, n := range names {
		if n == DefaultName {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %v, missing %q", names, DefaultName)
	}
}

func TestMaxScore(t *testing.T) {
	q, err := LoadBuiltin("cremis")
	if err != nil {
		t.Fatal(err)
	}
	if got := q.MaxScore(); got != 13 {
		t.Errorf("MaxScore() = %d, want 13", got)
	}
}

func TestIDsAndOffers(t *testing.T) {
	q, err := LoadBuiltin("cremis")
	if err != nil {
		t.Fatal(err)
	}
	ids := q.IDs()
	if strings.Join(ids, ",") != "q1,q2,q3,q4,q5,q6" {
		t.Errorf("IDs() = %v", ids)
	}
	q5, ok := q.Question("q5")
	if !ok {
		t.Fatal("q5 missing")
	}
	if !q5.Offers(3) {
		t.Error("q5 should offer weight 3")
	}
	if q5.Offers(2) {
		t.Error("q5 should not offer weight 2")
	}
	if _, ok := q.Question("q7"); ok {
		t.Error("q7 should not exist")
	}
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.yaml")
	content := `name: short
version: 2
title: Short form
questions:
  - id: a
    text: First?
    options:
      - label: "Yes"
        weight: 2
      - label: "No"
        weight: 0
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	q, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve(path): %v", err)
	}
	if q.Name != "short" || len(q.Questions) != 1 {
		t.Errorf("unexpected questionnaire: %+v", q)
	}
	if len(q.Tiers) != 0 {
		t.Errorf("expected no tiers, got %d", len(q.Tiers))
	}

	def, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\"): %v", err)
	}
	if def.Name != DefaultName {
		t.Errorf("default name = %q", def.Name)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("name: x\nquestionz: []\n"))
	if err == nil {
		t.Error("expected error for unknown field")
	}
}
