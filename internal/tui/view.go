package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifetrack/internal/catalog"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateSection:
		content = m.viewSection()
	case StateWeek:
		content = docStyle.Render(m.weekModel.View())
	case StateAddEntry:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewDate(),
		content,
		statusStyle.Render(m.status),
		m.help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Today", "Section", "Week"}
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewDate() string {
	label := m.day.LongDate
	if m.date == m.tracker.Today() {
		label += " (today)"
	}
	progress := progressStyle.Render(fmt.Sprintf("%d/%d sections  %d%%",
		len(m.day.Completion.Completed), m.day.Completion.Total(), m.day.Percent()))
	return lipgloss.JoinHorizontal(lipgloss.Top, dateStyle.Render(label), progress)
}

func (m Model) viewToday() string {
	return docStyle.Render(m.sectionList.View())
}

func (m Model) viewSection() string {
	section := m.entryList.Section()
	header := dateStyle.Render(section.Name)
	if section.Frequency != "" {
		header += statusStyle.Render(section.Frequency)
	}

	parts := []string{header, m.entryList.View()}
	if detail := m.entryList.Detail(); detail != "" {
		parts = append(parts, detailStyle.Render(detail))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	body := m.form.View()
	if m.formError != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render(m.formError), "", body)
	}
	return docStyle.Render(body)
}

func (m Model) viewConfirmDelete() string {
	name := "this entry"
	if section, ok := catalog.Get(m.sectionID); ok {
		name = "this " + section.Name + " entry"
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Are you sure you want to delete %s?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
