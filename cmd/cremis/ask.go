package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dshills/cremis/internal/render"
	"github.com/dshills/cremis/internal/ui/form"
)

type askFlags struct {
	questionnaire   string
	requireComplete bool
	noColor         bool
}

func newAskCmd() *cobra.Command {
	f := &askFlags{}

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Fill in the questionnaire interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.questionnaire, "questionnaire", "cremis", "Built-in questionnaire name or path to a YAML file")
	flags.BoolVar(&f.requireComplete, "require-complete", false, "Refuse to submit until every question is answered")
	flags.BoolVar(&f.noColor, "no-color", false, "Disable colors")

	return cmd
}

func runAsk(f *askFlags) error {
	eval, err := loadEvaluator(f.questionnaire, f.requireComplete)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(form.NewModel(eval, form.Options{NoColor: f.noColor})).Run()
	if err != nil {
		return fmt.Errorf("form failed: %w", err)
	}

	m, ok := final.(form.Model)
	if !ok {
		return nil
	}
	if res, ok := m.Result(); ok {
		fmt.Print(render.Text(res, f.noColor))
	}
	return nil
}
