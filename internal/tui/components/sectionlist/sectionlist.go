package sectionlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifetrack/internal/summary"
)

// OpenSectionMsg asks the parent to show a section's entries for the day.
type OpenSectionMsg struct {
	SectionID string
}

// AddEntryMsg asks the parent to open the entry form for a section.
type AddEntryMsg struct {
	SectionID string
}

type Item struct {
	Status summary.SectionStatus
}

func (i Item) Title() string {
	if i.Status.Completed {
		return "✓ " + i.Status.Section.Name
	}
	return "○ " + i.Status.Section.Name
}

func (i Item) Description() string {
	desc := i.Status.Section.Description
	switch {
	case i.Status.Entries == 1:
		desc = "1 entry | " + desc
	case i.Status.Entries > 1:
		desc = fmt.Sprintf("%d entries | %s", i.Status.Entries, desc)
	}
	if i.Status.Section.Frequency != "" {
		desc += " | " + i.Status.Section.Frequency
	}
	return desc
}

func (i Item) FilterValue() string { return i.Status.Section.Name }

type KeyMap struct {
	Open key.Binding
	Add  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add entry"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(day summary.DailySummary, width, height int) Model {
	l := list.New(items(day), list.NewDefaultDelegate(), width, height)
	l.Title = "Sections"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Add}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Add}
	}

	return Model{list: l, keys: keys}
}

func items(day summary.DailySummary) []list.Item {
	out := make([]list.Item, len(day.Sections))
	for i, s := range day.Sections {
		out[i] = Item{Status: s}
	}
	return out
}

// SetDay replaces the rows, keeping the cursor position.
func (m *Model) SetDay(day summary.DailySummary) {
	m.list.SetItems(items(day))
}

// Selected returns the highlighted section id.
func (m Model) Selected() (string, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Status.Section.ID, true
	}
	return "", false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Open):
			if id, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenSectionMsg{SectionID: id} }
			}
		case key.Matches(msg, m.keys.Add):
			if id, ok := m.Selected(); ok {
				return m, func() tea.Msg { return AddEntryMsg{SectionID: id} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the user is typing a filter, in which case
// keystrokes belong to the list.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
