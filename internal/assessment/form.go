package assessment

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownOption   = errors.New("option out of range")
)

// Form holds the selections of one questionnaire instance.
// A later selection for a question replaces the earlier one.
// Form is not safe for concurrent use.
type Form struct {
	eval    *Evaluator
	choices map[string]int
	result  *Result
}

// NewForm starts an empty form.
func (e *Evaluator) NewForm() *Form {
	return &Form{eval: e, choices: make(map[string]int)}
}

// Select records option index for questionID.
func (f *Form) Select(questionID string, option int) error {
	qu, ok := f.eval.q.Question(questionID)
	if !ok {
		return fmt.Errorf("assessment.Form.Select: %w: %q", ErrUnknownQuestion, questionID)
	}
	if option < 0 || option >= len(qu.Options) {
		return fmt.Errorf("assessment.Form.Select: %w: %s has %d options, got %d", ErrUnknownOption, questionID, len(qu.Options), option)
	}
	f.choices[questionID] = option
	return nil
}

// Selected returns the chosen option index for questionID.
func (f *Form) Selected(questionID string) (int, bool) {
	i, ok := f.choices[questionID]
	return i, ok
}

// Clear removes the selection for questionID.
func (f *Form) Clear(questionID string) {
	delete(f.choices, questionID)
}

// Reset drops every selection and the last result.
func (f *Form) Reset() {
	f.choices = make(map[string]int)
	f.result = nil
}

// Answers returns the current selections as weights.
func (f *Form) Answers() AnswerSet {
	answers := make(AnswerSet, len(f.choices))
	for id, i := range f.choices {
		qu, _ := f.eval.q.Question(id)
		answers[id] = qu.Options[i].Weight
	}
	return answers
}

// Submit scores the current selections and replaces the previous result.
// On error the previous result is discarded.
func (f *Form) Submit() (Result, error) {
	r, err := f.eval.Submit(f.Answers())
	if err != nil {
		f.result = nil
		return Result{}, err
	}
	f.result = &r
	return r, nil
}

// Result returns the outcome of the last successful Submit.
func (f *Form) Result() (Result, bool) {
	if f.result == nil {
		return Result{}, false
	}
	return *f.result, true
}
