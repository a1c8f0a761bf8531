// Package assessment scores answer sets and classifies them into severity tiers.
package assessment

// Result is the outcome of one submission.
type Result struct {
	Score int `json:"score"`
	Classification
	Answered   int      `json:"answered"`
	Total      int      `json:"total"`
	Complete   bool     `json:"complete"`
	MaxScore   int      `json:"max_score"`
	Unanswered []string `json:"unanswered,omitempty"`
}

// Report is the top-level CLI output object.
type Report struct {
	Tool    string    `json:"tool"`
	Version string    `json:"version"`
	Input   Input     `json:"input"`
	Answers AnswerSet `json:"answers"`
	Result  Result    `json:"result"`
}

// Input describes the sources a report was computed from.
type Input struct {
	AnswersFile       string `json:"answers_file,omitempty"`
	AnswersHash       string `json:"answers_hash,omitempty"`
	Questionnaire     string `json:"questionnaire"`
	QuestionnaireHash string `json:"questionnaire_hash,omitempty"`
	RequireComplete   bool   `json:"require_complete"`
}
