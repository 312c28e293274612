package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetrack/internal/catalog"
	"github.com/julianstephens/lifetrack/internal/tracker"
	"github.com/julianstephens/lifetrack/internal/tui/components/entrylist"
	"github.com/julianstephens/lifetrack/internal/tui/components/sectionlist"
	"github.com/julianstephens/lifetrack/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, date line, status and help take the remaining rows
		h, v := docStyle.GetFrameSize()
		m.sectionList.SetSize(msg.Width-h, msg.Height-v-5)
		m.entryList.SetSize(msg.Width-h, (msg.Height-v-5)/2)
		m.weekModel.SetSize(msg.Width-h, msg.Height-v-5)
	}

	// Handle Add Entry State
	if m.state == StateAddEntry {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.closeForm()
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if err := m.submitEntry(); err != nil {
				// stay in the form with the typed values so the user can fix them
				m.formError = err.Error()
				m.form = m.entryForm.Form()
				return m, m.form.Init()
			}
		case huh.StateAborted:
			m.closeForm()
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Delete State
	if m.state == StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Confirm):
				m.deleteEntry(m.entryToDelete)
				m.entryToDelete = ""
				m.state = m.previousState
			case key.Matches(msg, m.keys.Cancel):
				m.entryToDelete = ""
				m.state = m.previousState
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case sectionlist.OpenSectionMsg:
		m.sectionID = msg.SectionID
		m.state = StateSection
		m.refresh()
		return m, nil

	case sectionlist.AddEntryMsg:
		return m, m.openForm(msg.SectionID)

	case entrylist.AddEntryMsg:
		return m, m.openForm(msg.SectionID)

	case entrylist.DeleteEntryMsg:
		m.entryToDelete = msg.ID
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case entrylist.BackMsg:
		m.state = StateToday
		return m, nil

	case tea.KeyMsg:
		if m.state == StateToday && m.sectionList.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.PrevDay):
			m.shiftDate(-1)
			return m, nil
		case key.Matches(msg, m.keys.NextDay):
			m.shiftDate(1)
			return m, nil
		case key.Matches(msg, m.keys.Today):
			m.date = m.tracker.Today()
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.sectionList, cmd = m.sectionList.Update(msg)
	case StateSection:
		m.entryList, cmd = m.entryList.Update(msg)
	case StateWeek:
		m.weekModel, cmd = m.weekModel.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) shiftDate(days int) {
	date, err := utils.ShiftDate(m.date, days)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.date = date
	m.refresh()
}

func (m *Model) openForm(sectionID string) tea.Cmd {
	section, ok := catalog.Get(sectionID)
	if !ok {
		m.status = fmt.Sprintf("Unknown section %q", sectionID)
		return nil
	}
	m.sectionID = section.ID
	m.entryForm = NewEntryForm(section)
	m.form = m.entryForm.Form()
	m.formError = ""
	m.previousState = m.state
	m.state = StateAddEntry
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.entryForm = nil
	m.formError = ""
	m.state = m.previousState
}

// submitEntry validates the form and records the entry. Validation errors are
// returned so the form can be shown again; a failed save is only reported
// since the entry is kept in memory.
func (m *Model) submitEntry() error {
	data, err := m.entryForm.Data()
	if err != nil {
		return err
	}

	section := m.entryForm.Section
	entry, err := m.tracker.CreateEntry(section.ID, data)
	switch {
	case errors.Is(err, tracker.ErrPersistence):
		m.status = warningStyle.Render(fmt.Sprintf("⚠ %s entry kept in memory only: %v", section.Name, err))
	case err != nil:
		return err
	default:
		m.status = fmt.Sprintf("✓ Added %s entry", section.Name)
	}

	// new entries always land on the current day
	m.date = entry.Date
	m.closeForm()
	m.state = StateSection
	m.refresh()
	return nil
}

func (m *Model) deleteEntry(id string) {
	removed, err := m.tracker.DeleteEntry(id)
	switch {
	case err != nil:
		m.status = warningStyle.Render(fmt.Sprintf("⚠ Deleted in memory only: %v", err))
	case !removed:
		m.status = "Entry no longer exists"
	default:
		m.status = "✓ Entry deleted"
	}
	m.refresh()
}
