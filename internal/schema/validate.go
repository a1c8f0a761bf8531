// Package schema validates questionnaire definitions and submitted answers.
package schema

import (
	"fmt"
	"sort"

	"github.com/dshills/cremis/internal/questionnaire"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// ValidateQuestionnaire checks a questionnaire for structural validity.
// Tier bands are checked by the assessment package when it builds its ladder.
func ValidateQuestionnaire(q *questionnaire.Questionnaire) []ValidationError {
	var errs []ValidationError

	if q.Name == "" {
		errs = append(errs, ValidationError{"name", "required"})
	}
	if len(q.Questions) == 0 {
		errs = append(errs, ValidationError{"questions", "at least one question required"})
	}

	ids := make(map[string]bool)
	for i, qu := range q.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		if qu.ID == "" {
			errs = append(errs, ValidationError{prefix + ".id", "required"})
		} else if ids[qu.ID] {
			errs = append(errs, ValidationError{prefix + ".id", fmt.Sprintf("duplicate ID: %q", qu.ID)})
		} else {
			ids[qu.ID] = true
		}
		if qu.Text == "" {
			errs = append(errs, ValidationError{prefix + ".text", "required"})
		}
		if len(qu.Options) < 2 {
			errs = append(errs, ValidationError{prefix + ".options", "at least two options required"})
		}
		for j, o := range qu.Options {
			op := fmt.Sprintf("%s.options[%d]", prefix, j)
			if o.Label == "" {
				errs = append(errs, ValidationError{op + ".label", "required"})
			}
			if o.Weight < 0 {
				errs = append(errs, ValidationError{op + ".weight", fmt.Sprintf("must be >= 0, got %d", o.Weight)})
			}
		}
	}

	return errs
}

// ValidateAnswers checks that every answered question exists in q and that
// its weight is offered by one of the question's options. Missing answers
// are not an error here.
func ValidateAnswers(q *questionnaire.Questionnaire, answers map[string]int) []ValidationError {
	var errs []ValidationError

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		path := "answers." + id
		qu, ok := q.Question(id)
		if !ok {
			errs = append(errs, ValidationError{path, "unknown question"})
			continue
		}
		if w := answers[id]; !qu.Offers(w) {
			errs = append(errs, ValidationError{path, fmt.Sprintf("weight %d is not offered by any option", w)})
		}
	}

	return errs
}
