package assessment

import "github.com/dshills/cremis/internal/questionnaire"

// AnswerSet maps a question ID to the weight of its selected option.
// Unanswered questions are absent.
type AnswerSet map[string]int

// ComputeScore sums every weight in the answer set. An empty set scores 0.
func ComputeScore(answers AnswerSet) int {
	score := 0
	for _, w := range answers {
		score += w
	}
	return score
}

// Unanswered returns the IDs of questions missing from answers, in display order.
func Unanswered(q *questionnaire.Questionnaire, answers AnswerSet) []string {
	var missing []string
	for _, qu := range q.Questions {
		if _, ok := answers[qu.ID]; !ok {
			missing = append(missing, qu.ID)
		}
	}
	return missing
}
