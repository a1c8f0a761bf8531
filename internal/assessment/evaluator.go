package assessment

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/cremis/internal/questionnaire"
	"github.com/dshills/cremis/internal/schema"
)

var (
	ErrInvalidQuestionnaire = errors.New("invalid questionnaire")
	ErrInvalidAnswers       = errors.New("invalid answers")
	ErrIncomplete           = errors.New("incomplete answers")
)

// ValidationErrors carries schema violations. It unwraps to Kind.
type ValidationErrors struct {
	Kind   error
	Errors []schema.ValidationError
}

func (v *ValidationErrors) Error() string {
	msgs := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		msgs[i] = e.Error()
	}
	return v.Kind.Error() + ": " + strings.Join(msgs, "; ")
}

func (v *ValidationErrors) Unwrap() error { return v.Kind }

// IncompleteError lists unanswered questions when completeness is required.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: unanswered %s", ErrIncomplete, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

// EvalOption configures an Evaluator.
type EvalOption func(*Evaluator)

// RequireComplete rejects answer sets that leave any question unanswered.
func RequireComplete() EvalOption {
	return func(e *Evaluator) { e.requireComplete = true }
}

// WithLadder overrides the tier bands declared by the questionnaire.
func WithLadder(l Ladder) EvalOption {
	return func(e *Evaluator) { e.ladder = slices.Clone(l) }
}

// Evaluator scores answer sets against one questionnaire.
// It is immutable after construction and safe for concurrent use.
type Evaluator struct {
	q               *questionnaire.Questionnaire
	ladder          Ladder
	requireComplete bool
}

// NewEvaluator validates q and its tier bands.
func NewEvaluator(q *questionnaire.Questionnaire, opts ...EvalOption) (*Evaluator, error) {
	if q == nil {
		return nil, fmt.Errorf("assessment.NewEvaluator: %w: nil", ErrInvalidQuestionnaire)
	}
	if errs := schema.ValidateQuestionnaire(q); len(errs) > 0 {
		return nil, fmt.Errorf("assessment.NewEvaluator: %w", &ValidationErrors{Kind: ErrInvalidQuestionnaire, Errors: errs})
	}
	e := &Evaluator{q: q}
	for _, opt := range opts {
		opt(e)
	}
	if e.ladder == nil {
		l, err := LadderFrom(q.Tiers)
		if err != nil {
			return nil, fmt.Errorf("assessment.NewEvaluator: %w: %w", ErrInvalidQuestionnaire, err)
		}
		e.ladder = l
	} else if err := e.ladder.Validate(); err != nil {
		return nil, fmt.Errorf("assessment.NewEvaluator: %w", err)
	}
	return e, nil
}

// Questionnaire returns the questionnaire answers are checked against.
func (e *Evaluator) Questionnaire() *questionnaire.Questionnaire { return e.q }

// Ladder returns a copy of the tier bands in use.
func (e *Evaluator) Ladder() Ladder { return slices.Clone(e.ladder) }

// RequiresComplete reports whether partial answer sets are rejected.
func (e *Evaluator) RequiresComplete() bool { return e.requireComplete }

// Submit validates answers, then scores and classifies them.
// Partial sets are accepted unless RequireComplete was set.
func (e *Evaluator) Submit(answers AnswerSet) (Result, error) {
	if errs := schema.ValidateAnswers(e.q, answers); len(errs) > 0 {
		return Result{}, &ValidationErrors{Kind: ErrInvalidAnswers, Errors: errs}
	}
	missing := Unanswered(e.q, answers)
	if e.requireComplete && len(missing) > 0 {
		return Result{}, &IncompleteError{Missing: missing}
	}

	score := ComputeScore(answers)
	return Result{
		Score:          score,
		Classification: e.ladder.Classify(score),
		Answered:       len(answers),
		Total:          len(e.q.Questions),
		Complete:       len(missing) == 0,
		MaxScore:       e.q.MaxScore(),
		Unanswered:     missing,
	}, nil
}
