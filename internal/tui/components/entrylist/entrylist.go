package entrylist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/summary"
)

type AddEntryMsg struct {
	SectionID string
}

type DeleteEntryMsg struct {
	ID string
}

type BackMsg struct{}

type Item struct {
	Entry   models.Entry
	Section models.Section
}

func (i Item) Title() string {
	return "Logged at " + i.Entry.CreatedAt.Local().Format("15:04")
}

// Description shows the filled-in fields only; the full card is in the
// detail pane.
func (i Item) Description() string {
	var parts []string
	for _, line := range summary.EntryLines(i.Section, i.Entry) {
		if line.Empty {
			continue
		}
		parts = append(parts, line.Name+": "+line.Value)
	}
	if len(parts) == 0 {
		return "no details"
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string { return i.Description() }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
	Back   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
	}
}

type Model struct {
	list    list.Model
	keys    KeyMap
	section models.Section
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Back}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete, keys.Back}
	}

	return Model{list: l, keys: keys}
}

// SetView shows one section's entries for a day.
func (m *Model) SetView(view summary.SectionDayView) {
	m.section = view.Section
	items := make([]list.Item, len(view.Entries))
	for i, e := range view.Entries {
		items[i] = Item{Entry: e, Section: view.Section}
	}
	m.list.SetItems(items)
}

func (m Model) Section() models.Section {
	return m.section
}

// Selected returns the highlighted entry.
func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			id := m.section.ID
			return m, func() tea.Msg { return AddEntryMsg{SectionID: id} }
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{ID: i.Entry.ID} }
			}
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No entries for this day.\n  Press 'a' to add one."
	}
	return m.list.View()
}

// Detail renders every field of the highlighted entry, "Not provided"
// included.
func (m Model) Detail() string {
	i, ok := m.Selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, line := range summary.EntryLines(i.Section, i.Entry) {
		b.WriteString(line.Name + ": " + line.Value + "\n")
	}
	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
