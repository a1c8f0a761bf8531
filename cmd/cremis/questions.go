package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/cremis/internal/render"
)

type questionsFlags struct {
	format        string
	out           string
	questionnaire string
}

func newQuestionsCmd() *cobra.Command {
	f := &questionsFlags{}

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print the questionnaire and its scoring tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestions(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "md", "Output format: md, json, or yaml")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.questionnaire, "questionnaire", "cremis", "Built-in questionnaire name or path to a YAML file")

	return cmd
}

func runQuestions(f *questionsFlags) error {
	eval, err := loadEvaluator(f.questionnaire, false)
	if err != nil {
		return err
	}
	q := eval.Questionnaire()

	var output string
	switch f.format {
	case "md":
		output = render.QuestionsMarkdown(q, eval.Ladder())
	case "json":
		data, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data) + "\n"
	case "yaml":
		data, err := yaml.Marshal(q)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		output = string(data)
	default:
		return exitError(3, "unknown format: %s", f.format)
	}

	return writeOutput(f.out, output)
}
