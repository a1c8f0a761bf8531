package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/cremis/internal/assessment"
)

// tierColors maps classification color tokens to terminal colors.
var tierColors = map[string]lipgloss.Color{
	"red":    lipgloss.Color("196"),
	"orange": lipgloss.Color("208"),
	"yellow": lipgloss.Color("220"),
	"green":  lipgloss.Color("42"),
}

// ColorFor returns the terminal color for a color token.
// Unknown tokens render grey.
func ColorFor(token string) lipgloss.Color {
	if c, ok := tierColors[strings.ToLower(token)]; ok {
		return c
	}
	return lipgloss.Color("244")
}

// Text renders a result as a boxed, tier-colored panel. With noColor the
// panel is plain text.
func Text(r assessment.Result, noColor bool) string {
	header := fmt.Sprintf("%s  score %d / %d", r.Tier, r.Score, r.MaxScore)
	lines := []string{header, "", r.Message}
	if !r.Complete {
		lines = append(lines, "", fmt.Sprintf("Answered %d of %d questions.", r.Answered, r.Total))
	}
	body := strings.Join(lines, "\n")
	if noColor {
		return body + "\n"
	}
	color := ColorFor(r.Color)
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		Width(72)
	header = lipgloss.NewStyle().Bold(true).Foreground(color).Render(header)
	lines[0] = header
	return style.Render(strings.Join(lines, "\n")) + "\n"
}

// Stylize applies a foreground color unless noColor is set.
func Stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
