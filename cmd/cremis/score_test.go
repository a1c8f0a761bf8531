package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/cremis/internal/assessment"
	"github.com/dshills/cremis/internal/config"
)

// --- Pure function tests ---

func TestTierMeetsThreshold(t *testing.T) {
	tests := []struct {
		tier    assessment.Tier
		failOn  string
		want    bool
		wantErr bool
	}{
		{assessment.TierGreen, "", false, false},
		{assessment.TierRed, "", false, false},

		{assessment.TierGreen, "yellow", false, false},
		{assessment.TierYellow, "yellow", true, false},
		{assessment.TierOrange, "yellow", true, false},
		{assessment.TierRed, "YELLOW", true, false},

		{assessment.TierYellow, "orange", false, false},
		{assessment.TierOrange, "orange", true, false},
		{assessment.TierRed, "orange", true, false},

		{assessment.TierOrange, "red", false, false},
		{assessment.TierRed, "red", true, false},

		// GREEN would fail every run
		{assessment.TierGreen, "green", false, true},
		{assessment.TierRed, "GREEN", false, true},

		// unknown tier never meets
		{assessment.Tier("BOGUS"), "yellow", false, false},

		{assessment.TierRed, "purple", false, true},
	}
	for _, tt := range tests {
		name := string(tt.tier) + "/" + tt.failOn
		t.Run(name, func(t *testing.T) {
			got, err := tierMeetsThreshold(tt.tier, tt.failOn)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for unrecognized failOn value")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("tierMeetsThreshold(%q, %q) = %v, want %v", tt.tier, tt.failOn, got, tt.want)
			}
		})
	}
}

// --- helpers ---

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeTempAnswers(t *testing.T, content string) string {
	t.Helper()
	return writeTempFile(t, t.TempDir(), "answers.yaml", content)
}

func assertExitCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	if wantCode == 0 {
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", wantCode)
	}
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected *exitErr, got %T: %v", err, err)
	}
	if ee.code != wantCode {
		t.Errorf("exit code = %d, want %d (msg: %s)", ee.code, wantCode, ee.msg)
	}
}

// scoreToFile runs the score command into a temp JSON file and decodes the report.
func scoreToFile(t *testing.T, answersPath string, f *scoreFlags) assessment.Report {
	t.Helper()
	f.format = "json"
	f.out = filepath.Join(t.TempDir(), "report.json")
	if f.questionnaire == "" {
		f.questionnaire = "cremis"
	}
	assertExitCode(t, runScore(answersPath, f), 0)

	data, err := os.ReadFile(f.out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var rep assessment.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, data)
	}
	return rep
}

// --- runScore tests ---

func TestRunScoreHappyPath(t *testing.T) {
	path := writeTempAnswers(t, "q1: 0\nq2: 0\nq3: 1\nq4: 0\nq5: 1\nq6: 1\n")
	rep := scoreToFile(t, path, &scoreFlags{})

	if rep.Tool != "cremis" {
		t.Errorf("tool = %q", rep.Tool)
	}
	if rep.Result.Score != 3 || rep.Result.Tier != assessment.TierYellow {
		t.Errorf("result = %d/%s, want 3/YELLOW", rep.Result.Score, rep.Result.Tier)
	}
	if rep.Result.Color != "yellow" {
		t.Errorf("color = %q", rep.Result.Color)
	}
	if !rep.Result.Complete || rep.Result.Answered != 6 || rep.Result.Total != 6 {
		t.Errorf("completeness = %+v", rep.Result)
	}
	if rep.Result.MaxScore != 13 {
		t.Errorf("max score = %d, want 13", rep.Result.MaxScore)
	}
	if rep.Input.AnswersFile != "answers.yaml" {
		t.Errorf("answers file = %q", rep.Input.AnswersFile)
	}
	if !strings.HasPrefix(rep.Input.AnswersHash, "sha256:") {
		t.Errorf("answers hash = %q", rep.Input.AnswersHash)
	}
	if !strings.HasPrefix(rep.Input.QuestionnaireHash, "sha256:") {
		t.Errorf("questionnaire hash = %q", rep.Input.QuestionnaireHash)
	}
}

func TestRunScoreNoAnswersIsGreen(t *testing.T) {
	rep := scoreToFile(t, "", &scoreFlags{})
	if rep.Result.Score != 0 || rep.Result.Tier != assessment.TierGreen {
		t.Errorf("result = %d/%s, want 0/GREEN", rep.Result.Score, rep.Result.Tier)
	}
	if rep.Result.Complete {
		t.Error("empty answer set should not be complete")
	}
	if rep.Answers == nil {
		t.Error("answers should be an empty object, not null")
	}
}

func TestRunScoreAssignmentsOverrideFile(t *testing.T) {
	path := writeTempAnswers(t, "answers:\n  q1: 0\n  q5: 3\n")
	rep := scoreToFile(t, path, &scoreFlags{answers: []string{"q1=3", "q3=2"}})

	if rep.Answers["q1"] != 3 {
		t.Errorf("q1 = %d, want override 3", rep.Answers["q1"])
	}
	if rep.Result.Score != 8 || rep.Result.Tier != assessment.TierRed {
		t.Errorf("result = %d/%s, want 8/RED", rep.Result.Score, rep.Result.Tier)
	}
}

func TestRunScoreBoundaries(t *testing.T) {
	tests := []struct {
		answers []string
		score   int
		tier    assessment.Tier
	}{
		{[]string{"q3=2"}, 2, assessment.TierGreen},
		{[]string{"q1=3"}, 3, assessment.TierYellow},
		{[]string{"q1=3", "q2=1"}, 4, assessment.TierYellow},
		{[]string{"q1=3", "q3=2"}, 5, assessment.TierOrange},
		{[]string{"q1=3", "q5=3"}, 6, assessment.TierOrange},
		{[]string{"q1=3", "q5=3", "q2=1"}, 7, assessment.TierRed},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.answers, ","), func(t *testing.T) {
			rep := scoreToFile(t, "", &scoreFlags{answers: tt.answers})
			if rep.Result.Score != tt.score || rep.Result.Tier != tt.tier {
				t.Errorf("got %d/%s, want %d/%s", rep.Result.Score, rep.Result.Tier, tt.score, tt.tier)
			}
		})
	}
}

func TestRunScoreMissingAnswersFile(t *testing.T) {
	err := runScore("/nonexistent/answers.yaml", &scoreFlags{format: "json", questionnaire: "cremis"})
	assertExitCode(t, err, 3)
}

func TestRunScoreMalformedAnswersFile(t *testing.T) {
	path := writeTempAnswers(t, "q1: [unterminated\n")
	err := runScore(path, &scoreFlags{format: "json", questionnaire: "cremis"})
	assertExitCode(t, err, 3)
}

func TestRunScoreBadAssignment(t *testing.T) {
	err := runScore("", &scoreFlags{format: "json", questionnaire: "cremis", answers: []string{"q1"}})
	assertExitCode(t, err, 3)
}

func TestRunScoreUnknownQuestionnaire(t *testing.T) {
	err := runScore("", &scoreFlags{format: "json", questionnaire: "nonexistent-questionnaire-xyz"})
	assertExitCode(t, err, 3)
}

func TestRunScoreUnknownQuestion(t *testing.T) {
	err := runScore("", &scoreFlags{format: "json", questionnaire: "cremis", answers: []string{"q9=1"}})
	assertExitCode(t, err, 5)
}

func TestRunScoreUnofferedWeight(t *testing.T) {
	err := runScore("", &scoreFlags{format: "json", questionnaire: "cremis", answers: []string{"q5=2"}})
	assertExitCode(t, err, 5)
}

func TestRunScoreRequireComplete(t *testing.T) {
	err := runScore("", &scoreFlags{
		format:          "json",
		questionnaire:   "cremis",
		answers:         []string{"q1=3"},
		requireComplete: true,
	})
	assertExitCode(t, err, 5)

	path := writeTempAnswers(t, "q1: 1\nq2: 0\nq3: 0\nq4: 0\nq5: 0\nq6: 0\n")
	rep := scoreToFile(t, path, &scoreFlags{requireComplete: true})
	if !rep.Input.RequireComplete || rep.Result.Tier != assessment.TierGreen {
		t.Errorf("unexpected report: %+v", rep)
	}
}

func TestRunScoreFormatUnknown(t *testing.T) {
	err := runScore("", &scoreFlags{format: "xml", questionnaire: "cremis"})
	assertExitCode(t, err, 3)
}

func TestRunScoreFailOnUnrecognized(t *testing.T) {
	for _, failOn := range []string{"purple", "green"} {
		t.Run(failOn, func(t *testing.T) {
			err := runScore("", &scoreFlags{format: "json", questionnaire: "cremis", failOn: failOn})
			assertExitCode(t, err, 3)
		})
	}
}

func TestRunScoreFailOn(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		failOn string
		want   int
	}{
		{"red", 0},
		{"orange", 2},
		{"yellow", 2},
	}
	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			f := &scoreFlags{
				format:        "json",
				out:           filepath.Join(dir, tt.failOn+".json"),
				questionnaire: "cremis",
				answers:       []string{"q1=3", "q3=2"},
				failOn:        tt.failOn,
			}
			assertExitCode(t, runScore("", f), tt.want)
			// Output is written before the threshold check.
			if _, err := os.Stat(f.out); err != nil {
				t.Errorf("output not written: %v", err)
			}
		})
	}
}

func TestRunScoreFormatMarkdown(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.md")
	f := &scoreFlags{
		format:        "md",
		out:           out,
		questionnaire: "cremis",
		answers:       []string{"q1=3", "q5=3", "q2=1"},
	}
	assertExitCode(t, runScore("", f), 0)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	md := string(data)
	for _, want := range []string{"# CREMIS Assessment Form Result", "RED", "rapid intervention", "Sleep on the street"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRunScoreFormatText(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.txt")
	f := &scoreFlags{
		format:        "text",
		out:           out,
		questionnaire: "cremis",
		noColor:       true,
	}
	assertExitCode(t, runScore("", f), 0)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "GREEN") {
		t.Errorf("text output missing tier:\n%s", data)
	}
}

func TestRunScoreCustomQuestionnaire(t *testing.T) {
	dir := t.TempDir()
	qPath := writeTempFile(t, dir, "short.yaml", `name: short
version: 1
title: Short form
questions:
  - id: a
    text: Anything wrong?
    options:
      - label: "Yes"
        weight: 4
      - label: "No"
        weight: 0
tiers:
  - min: 4
    tier: RED
    color: red
    message: Act now.
  - min: 0
    tier: GREEN
    color: green
    message: All good.
`)
	rep := scoreToFile(t, "", &scoreFlags{questionnaire: qPath, answers: []string{"a=4"}})
	if rep.Input.Questionnaire != "short" {
		t.Errorf("questionnaire = %q", rep.Input.Questionnaire)
	}
	if rep.Result.Tier != assessment.TierRed || rep.Result.Message != "Act now." {
		t.Errorf("result = %+v", rep.Result)
	}
}

// --- questions tests ---

func TestRunQuestionsFormats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		format string
		want   string
	}{
		{"md", "In the last year, because you had no other choice"},
		{"json", `"id": "q1"`},
		{"yaml", "id: q1"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out := filepath.Join(dir, "questions."+tt.format)
			err := runQuestions(&questionsFlags{format: tt.format, out: out, questionnaire: "cremis"})
			assertExitCode(t, err, 0)
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("%s output missing %q", tt.format, tt.want)
			}
		})
	}
}

func TestRunQuestionsFormatUnknown(t *testing.T) {
	err := runQuestions(&questionsFlags{format: "csv", questionnaire: "cremis"})
	assertExitCode(t, err, 3)
}

// --- serve flag tests ---

func TestApplyServeFlags(t *testing.T) {
	base := config.Server{
		Addr:          ":8080",
		Questionnaire: "cremis",
		CORSOrigins:   []string{"http://localhost:3000"},
	}

	cmd := newServeCmd()
	cfg, err := applyServeFlags(cmd, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" || cfg.Questionnaire != "cremis" {
		t.Errorf("unchanged flags should not override env: %+v", cfg)
	}

	if err := cmd.Flags().Set("addr", ":9090"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("require-complete", "true"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("cors-origin", "*"); err != nil {
		t.Fatal(err)
	}
	cfg, err = applyServeFlags(cmd, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Addr)
	}
	if !cfg.RequireComplete {
		t.Error("require-complete should be set")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("cors origins = %v", cfg.CORSOrigins)
	}
	if cfg.Questionnaire != "cremis" {
		t.Errorf("questionnaire = %q, want env value", cfg.Questionnaire)
	}
}
