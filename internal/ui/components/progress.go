package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for value out of total.
type ProgressBar struct {
	Label string
	Value int
	Total int
	Width int
}

// Fraction is Value/Total clamped to [0,1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Value)/float64(p.Total), 0), 1)
}

// View renders the bar followed by "value/total".
func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	count := fmt.Sprintf("  %d/%d", p.Value, p.Total)
	barWidth := max(p.Width-lipgloss.Width(b.String())-len(count), 4)
	filled := int(float64(barWidth) * p.Fraction())

	b.WriteString(lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(count))
	return b.String()
}
