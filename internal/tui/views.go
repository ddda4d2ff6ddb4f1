package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dookkeobi/leakpot/internal/model"
	"github.com/dookkeobi/leakpot/internal/tui/themes"
	"github.com/dookkeobi/leakpot/internal/tui/viewmodel"
)

const (
	categoryBarWidth = 20
	waterBarMax      = 20
	puddleMax        = 26
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.loading {
		return m.renderLoading()
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sections := []string{
		m.renderTitle(),
		m.renderYearStrip(),
		m.renderPot(),
		m.renderCategories(),
		m.renderStatus(),
		m.help.ShortHelpView(m.keymap.ShortHelp()),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLoading() string {
	return m.theme.StatusPending.Render(fmt.Sprintf("Loading budgets for %s...", m.period))
}

func (m Model) renderHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Keyboard Shortcuts"),
		m.help.FullHelpView(m.keymap.FullHelp()),
	)
}

func (m Model) renderTitle() string {
	return m.theme.Title.Render(fmt.Sprintf("Leak Pot  %s", m.period))
}

// renderYearStrip shows one marker per month: filled when that month leaked.
func (m Model) renderYearStrip() string {
	var b strings.Builder
	for month := 1; month <= 12; month++ {
		p := model.Period{Year: m.period.Year, Month: month}

		marker := "○"
		style := m.theme.BarEmpty
		if m.yearIndex[p] {
			marker = "●"
			style = m.theme.StatusError
		}

		cell := fmt.Sprintf(" %s %d ", marker, month)
		if month == m.period.Month {
			b.WriteString(m.theme.Highlighted.Render(cell))
		} else {
			b.WriteString(style.Render(cell))
		}
	}
	return b.String()
}

// renderPot draws the cracks and puddle for the current leaking set.
func (m Model) renderPot() string {
	leaks, total := m.editor.Leaks()
	pot := viewmodel.BuildPotView(leaks, total)

	if !pot.Leaking {
		return m.theme.RoundedBox.Render(
			m.theme.StatusSuccess.Render("The pot is holding. No leaks this month."))
	}

	lines := make([]string, 0, len(pot.Cracks)+2)
	for _, crack := range pot.Cracks {
		water := int(crack.WaterScale / 2.0 * waterBarMax)
		if water < 1 {
			water = 1
		}
		lines = append(lines, fmt.Sprintf("%s %-14s %s %s",
			themes.GetCategoryIcon(crack.Name),
			crack.Name,
			m.theme.BarOver.Render(strings.Repeat("≋", water)),
			m.theme.StatusError.Render("-"+viewmodel.FormatAmount(crack.LeakAmount)),
		))
	}

	puddle := int(pot.PuddleScale / 2.2 * puddleMax)
	lines = append(lines,
		m.theme.BarOver.Render(strings.Repeat("~", puddle)),
		m.theme.Bold.Render(fmt.Sprintf("Total leak %s", viewmodel.FormatAmount(pot.TotalLeak))),
	)

	return m.theme.RoundedBox.Render(strings.Join(lines, "\n"))
}

// renderCategories lists every category with its spending bar and threshold.
func (m Model) renderCategories() string {
	categories := m.editor.Categories()
	lines := make([]string, 0, len(categories))

	for i, cat := range categories {
		marker := "  "
		nameStyle := m.theme.Normal
		if i == m.cursor {
			marker = m.theme.Selected.Render("▸ ")
			nameStyle = m.theme.Bold
		}

		lines = append(lines, fmt.Sprintf("%s%s %s %s %s / %s",
			marker,
			themes.GetCategoryIcon(cat.Name),
			nameStyle.Render(fmt.Sprintf("%-14s", cat.Name)),
			m.renderBar(cat),
			viewmodel.FormatAmount(cat.Spending),
			viewmodel.FormatAmount(cat.Threshold),
		))
	}

	return strings.Join(lines, "\n")
}

// renderBar fills proportionally to spending over threshold; overspend turns
// the bar red.
func (m Model) renderBar(cat model.Category) string {
	if cat.Threshold <= 0 {
		if cat.Spending > 0 {
			return m.theme.BarOver.Render(strings.Repeat("█", categoryBarWidth))
		}
		return m.theme.BarEmpty.Render(strings.Repeat("░", categoryBarWidth))
	}

	filled := int(float64(cat.Spending) / float64(cat.Threshold) * categoryBarWidth)
	over := cat.Spending > cat.Threshold
	if filled > categoryBarWidth {
		filled = categoryBarWidth
	}

	fillStyle := m.theme.BarFull
	if over {
		fillStyle = m.theme.BarOver
	}

	return fillStyle.Render(strings.Repeat("█", filled)) +
		m.theme.BarEmpty.Render(strings.Repeat("░", categoryBarWidth-filled))
}

func (m Model) renderStatus() string {
	switch {
	case m.lastError != nil:
		return m.theme.StatusWarning.Render(m.status)
	case m.status == "Saved":
		return m.theme.StatusSuccess.Render(m.status)
	case m.status != "":
		return m.theme.StatusPending.Render(m.status)
	default:
		return ""
	}
}
