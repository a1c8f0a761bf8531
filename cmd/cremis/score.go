package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/cremis/internal/answers"
	"github.com/dshills/cremis/internal/assessment"
	"github.com/dshills/cremis/internal/render"
)

type scoreFlags struct {
	format          string
	out             string
	answers         []string
	questionnaire   string
	failOn          string
	requireComplete bool
	noColor         bool
	verbose         bool
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score [answers-file]",
		Short: "Score an answer set and classify it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runScore(path, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json, md, or text")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringArrayVarP(&f.answers, "answer", "a", nil, "Answer as id=weight (may be repeated; overrides the file)")
	flags.StringVar(&f.questionnaire, "questionnaire", "cremis", "Built-in questionnaire name or path to a YAML file")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit non-zero if the tier is at least this level: yellow, orange, or red")
	flags.BoolVar(&f.requireComplete, "require-complete", false, "Reject answer sets that leave questions unanswered")
	flags.BoolVar(&f.noColor, "no-color", false, "Disable colors in text output")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runScore(answersPath string, f *scoreFlags) error {
	logger := log.New(os.Stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}

	switch f.format {
	case "json", "md", "text":
	default:
		return exitError(3, "unknown format: %s", f.format)
	}

	if _, err := tierMeetsThreshold(assessment.TierGreen, f.failOn); err != nil {
		return exitError(3, "invalid --fail-on: %v", err)
	}

	// 1. Load questionnaire
	verbose("Loading questionnaire: %s", f.questionnaire)
	eval, err := loadEvaluator(f.questionnaire, f.requireComplete)
	if err != nil {
		return err
	}
	q := eval.Questionnaire()
	verbose("Loaded %d questions", len(q.Questions))

	// 2. Collect answers
	set := assessment.AnswerSet{}
	input := assessment.Input{
		Questionnaire:     q.Name,
		QuestionnaireHash: q.Hash,
		RequireComplete:   f.requireComplete,
	}
	if answersPath != "" {
		verbose("Loading answers: %s", answersPath)
		af, err := answers.Load(answersPath)
		if err != nil {
			return exitError(3, "failed to load answers: %v", err)
		}
		set = af.Answers
		input.AnswersFile = filepath.Base(answersPath)
		input.AnswersHash = af.Hash
	}
	overrides, err := answers.ParseAssignments(f.answers)
	if err != nil {
		return exitError(3, "invalid --answer: %v", err)
	}
	set = answers.Merge(set, overrides)
	verbose("Collected %d answers", len(set))

	// 3. Score
	result, err := eval.Submit(set)
	if err != nil {
		var ve *assessment.ValidationErrors
		if errors.As(err, &ve) {
			fmt.Fprintln(os.Stderr, "Answer validation errors:")
			for _, e := range ve.Errors {
				fmt.Fprintf(os.Stderr, "  %s\n", e)
			}
			return exitError(5, "answers failed validation")
		}
		if errors.Is(err, assessment.ErrIncomplete) {
			return exitError(5, "%v", err)
		}
		return fmt.Errorf("scoring failed: %w", err)
	}
	verbose("Score %d -> %s", result.Score, result.Tier)

	rep := assessment.Report{
		Tool:    "cremis",
		Version: version,
		Input:   input,
		Answers: set,
		Result:  result,
	}

	// 4. Output
	var output string
	switch f.format {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case "md":
		output = render.Markdown(&rep, q)
	case "text":
		output = render.Text(result, f.noColor)
	}

	if f.out != "" {
		verbose("Writing output to %s", f.out)
	}
	if err := writeOutput(f.out, output); err != nil {
		return err
	}

	// 5. Exit code based on --fail-on
	meets, err := tierMeetsThreshold(result.Tier, f.failOn)
	if err != nil {
		return exitError(3, "invalid --fail-on: %v", err)
	}
	if meets {
		return exitError(2, "tier %s meets fail threshold %s", result.Tier, strings.ToUpper(f.failOn))
	}

	return nil
}

// tierMeetsThreshold reports whether tier is at least as severe as failOn.
// An empty failOn never fails. GREEN is rejected since every result meets it.
func tierMeetsThreshold(tier assessment.Tier, failOn string) (bool, error) {
	if failOn == "" {
		return false, nil
	}
	threshold, err := assessment.ParseTier(failOn)
	if err != nil {
		return false, err
	}
	if threshold == assessment.TierGreen {
		return false, fmt.Errorf("%s is the floor tier; use yellow, orange, or red", threshold)
	}
	return tier.AtLeast(threshold), nil
}
