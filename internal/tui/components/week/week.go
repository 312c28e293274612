package week

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifetrack/internal/query"
	"github.com/julianstephens/lifetrack/internal/summary"
)

const maxBarWidth = 30

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(5)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(8)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	incomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	expenseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport  viewport.Model
	Dashboard *summary.WeeklyDashboard
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Dashboard == nil {
		return "No data for this week."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetDashboard(d summary.WeeklyDashboard) {
	m.Dashboard = &d
	m.Render()
}

func (m *Model) Render() {
	if m.Dashboard == nil {
		m.viewport.SetContent("No data loaded.")
		return
	}
	d := m.Dashboard

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s to %s", d.Window[0], d.Window[len(d.Window)-1])) + "\n\n")

	b.WriteString(headingStyle.Render(fmt.Sprintf("Study hours  (total %s)", num(d.StudyHours.Sum()))) + "\n")
	b.WriteString(series(d.Weekdays, d.StudyHours))

	b.WriteString("\n" + headingStyle.Render(fmt.Sprintf("Job applications  (total %s)", num(d.JobApplications.Sum()))) + "\n")
	b.WriteString(series(d.Weekdays, d.JobApplications))

	b.WriteString("\n" + headingStyle.Render("Money") + "  " +
		expenseStyle.Render("spent "+num(d.Money.TotalA)) + "  " +
		incomeStyle.Render("earned "+num(d.Money.TotalB)) + "\n")
	for i, day := range d.Money.Days {
		b.WriteString(dayStyle.Render(d.Weekdays[i]) +
			expenseStyle.Render(fmt.Sprintf("-%-9s", num(day.A))) +
			incomeStyle.Render("+"+num(day.B)) + "\n")
	}

	b.WriteString("\n" + headingStyle.Render("Diet streak") + "\n")
	b.WriteString(fmt.Sprintf("current %d day(s), best %d day(s)\n", d.DietStreak.Current, d.DietStreak.Max))

	b.WriteString("\n" + headingStyle.Render("Most active sections") + "\n")
	if len(d.Activity) == 0 {
		b.WriteString(mutedStyle.Render("No entries this week.") + "\n")
	}
	for _, sc := range d.Activity {
		b.WriteString(fmt.Sprintf("%-26s %d\n", sc.Name, sc.Count))
	}

	m.viewport.SetContent(b.String())
}

// series draws one horizontal bar per day scaled to the week's largest total.
func series(labels []string, s query.Series) string {
	peak := 0.0
	for _, d := range s {
		if d.Total > peak {
			peak = d.Total
		}
	}

	var b strings.Builder
	for i, d := range s {
		width := 0
		if peak > 0 && d.Total > 0 {
			width = int(d.Total / peak * maxBarWidth)
			if width == 0 {
				width = 1
			}
		}
		b.WriteString(dayStyle.Render(labels[i]) + valueStyle.Render(num(d.Total)) + barStyle.Render(strings.Repeat("█", width)) + "\n")
	}
	return b.String()
}

func num(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
