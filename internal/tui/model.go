package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetrack/internal/catalog"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/summary"
	"github.com/julianstephens/lifetrack/internal/tracker"
	"github.com/julianstephens/lifetrack/internal/tui/components/entrylist"
	"github.com/julianstephens/lifetrack/internal/tui/components/sectionlist"
	"github.com/julianstephens/lifetrack/internal/tui/components/week"
)

type SessionState int

// The first three states are the tabs, in display order.
const (
	StateToday SessionState = iota
	StateSection
	StateWeek
	StateAddEntry
	StateConfirmDelete
)

const tabCount = 3

type Model struct {
	tracker       *tracker.Store
	sections      []models.Section
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	date          string
	day           summary.DailySummary
	sectionID     string
	sectionList   sectionlist.Model
	entryList     entrylist.Model
	weekModel     week.Model
	form          *huh.Form
	entryForm     *EntryForm
	entryToDelete string
	formError     string // shown above the entry form after a failed submit
	status        string // result of the last action
	quitting      bool
	width         int
	height        int
}

func NewModel(t *tracker.Store) Model {
	sections := catalog.ListSections()
	m := Model{
		tracker:     t,
		sections:    sections,
		state:       StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		date:        t.Today(),
		sectionList: sectionlist.New(summary.DailySummary{}, 0, 0),
		entryList:   entrylist.New(0, 0),
		weekModel:   week.New(0, 0),
	}
	if len(sections) > 0 {
		m.sectionID = sections[0].ID
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Enter, m.keys.Add, m.keys.PrevDay, m.keys.NextDay)
	case StateSection:
		keys = append(keys, m.keys.Add, m.keys.Delete, m.keys.PrevDay, m.keys.NextDay)
	case StateWeek:
		keys = append(keys, m.keys.PrevDay, m.keys.NextDay, m.keys.Today)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.PrevDay, m.keys.NextDay, m.keys.Today}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Enter, m.keys.Add}
	case StateSection:
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh recomputes every view from the tracker for the current date.
func (m *Model) refresh() {
	entries := m.tracker.Entries()

	m.day = summary.Daily(m.sections, entries, m.date)
	m.sectionList.SetDay(m.day)

	if section, ok := catalog.Get(m.sectionID); ok {
		m.entryList.SetView(summary.SectionDay(section, entries, m.date))
	}

	if dashboard, err := summary.WeeklyFor(m.sections, entries, m.date); err == nil {
		m.weekModel.SetDashboard(dashboard)
	}
}

// Date is the calendar day being viewed.
func (m Model) Date() string {
	return m.date
}

func (m Model) State() SessionState {
	return m.state
}

func (m Model) Status() string {
	return m.status
}
