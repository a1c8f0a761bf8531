// Package render produces Markdown and terminal output for questionnaires and results.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/cremis/internal/assessment"
	"github.com/dshills/cremis/internal/questionnaire"
)

// Markdown renders a report as a Markdown document.
func Markdown(r *assessment.Report, q *questionnaire.Questionnaire) string {
	var b strings.Builder

	title := "Assessment Result"
	if q != nil && q.Title != "" {
		title = q.Title + " Result"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Tier:** %s\n", r.Result.Tier)
	fmt.Fprintf(&b, "**Score:** %d / %d\n", r.Result.Score, r.Result.MaxScore)
	fmt.Fprintf(&b, "**Answered:** %d of %d\n\n", r.Result.Answered, r.Result.Total)
	fmt.Fprintf(&b, "%s\n\n", r.Result.Message)

	if !r.Result.Complete {
		b.WriteString("> Not every question was answered; unanswered questions count as 0.\n\n")
	}

	if q != nil {
		b.WriteString("## Answers\n\n")
		for i, qu := range q.Questions {
			w, ok := r.Answers[qu.ID]
			if !ok {
				fmt.Fprintf(&b, "%d. %s\n   - _(unanswered)_\n", i+1, qu.Text)
				continue
			}
			fmt.Fprintf(&b, "%d. %s\n   - %s (%d)\n", i+1, qu.Text, optionLabel(qu, w), w)
		}
		b.WriteString("\n")
	}

	if r.Input.AnswersFile != "" {
		b.WriteString("## Input\n\n")
		fmt.Fprintf(&b, "- %s\n", r.Input.AnswersFile)
		b.WriteString("\n")
	}

	return b.String()
}

// QuestionsMarkdown renders a questionnaire and its scoring ladder.
func QuestionsMarkdown(q *questionnaire.Questionnaire, ladder assessment.Ladder) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", q.Title)
	if q.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(q.Description))
	}

	for i, qu := range q.Questions {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, qu.Text)
		fmt.Fprintf(&b, "_id: %s_\n\n", qu.ID)
		for _, o := range qu.Options {
			fmt.Fprintf(&b, "- %s (%d)\n", o.Label, o.Weight)
		}
		b.WriteString("\n")
	}

	if len(ladder) > 0 {
		b.WriteString("## Scoring\n\n")
		b.WriteString("| Score | Tier | Guidance |\n|---|---|---|\n")
		for i, band := range ladder {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", bandRange(ladder, i), band.Tier, band.Message)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// bandRange describes the scores band i covers.
func bandRange(l assessment.Ladder, i int) string {
	if i == len(l)-1 {
		if i == 0 {
			return "any"
		}
		return fmt.Sprintf("< %d", l[i-1].Min)
	}
	return fmt.Sprintf(">= %d", l[i].Min)
}

// optionLabel returns the label of the first option carrying weight w.
func optionLabel(qu questionnaire.Question, w int) string {
	for _, o := range qu.Options {
		if o.Weight == w {
			return o.Label
		}
	}
	return "?"
}
