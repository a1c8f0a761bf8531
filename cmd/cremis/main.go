package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/cremis/internal/assessment"
	"github.com/dshills/cremis/internal/questionnaire"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "cremis",
		Short:         "Score CREMIS residential instability assessments",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newQuestionsCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newAskCmd())

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// loadEvaluator resolves a questionnaire reference and builds its evaluator.
func loadEvaluator(ref string, requireComplete bool) (*assessment.Evaluator, error) {
	q, err := questionnaire.Resolve(ref)
	if err != nil {
		return nil, exitError(3, "failed to load questionnaire: %v", err)
	}
	var opts []assessment.EvalOption
	if requireComplete {
		opts = append(opts, assessment.RequireComplete())
	}
	e, err := assessment.NewEvaluator(q, opts...)
	if err != nil {
		return nil, exitError(3, "invalid questionnaire %s: %v", ref, err)
	}
	return e, nil
}

// writeOutput writes to path, or stdout when path is empty.
func writeOutput(path, output string) error {
	if path == "" {
		fmt.Print(output)
		return nil
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
