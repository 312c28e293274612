// Package summary builds the daily, weekly and per-section views shown by
// the CLI and the TUI.
package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/query"
	"github.com/julianstephens/lifetrack/internal/utils"
)

const notProvided = "Not provided"

// SectionStatus is one row of the daily section list.
type SectionStatus struct {
	Section   models.Section
	Entries   int
	Completed bool
}

type DailySummary struct {
	Date       string
	LongDate   string
	Completion query.Completion
	Sections   []SectionStatus
}

func (d DailySummary) Percent() int {
	return d.Completion.Percent()
}

// Daily summarizes one calendar day.
func Daily(sections []models.Section, entries []models.Entry, date string) DailySummary {
	dayEntries := query.EntriesByDate(entries, date)
	counts := make(map[string]int)
	for _, e := range dayEntries {
		counts[e.SectionID]++
	}

	summary := DailySummary{
		Date:       date,
		LongDate:   utils.FormatLong(date),
		Completion: query.CompletionForDate(sections, dayEntries, date),
		Sections:   make([]SectionStatus, len(sections)),
	}
	for i, s := range sections {
		summary.Sections[i] = SectionStatus{
			Section:   s,
			Entries:   counts[s.ID],
			Completed: counts[s.ID] > 0,
		}
	}
	return summary
}

// WeeklyDashboard holds the seven-day aggregates.
type WeeklyDashboard struct {
	Window          []string
	Weekdays        []string
	StudyHours      query.Series
	JobApplications query.Series
	Activity        []query.SectionCount
	DietStreak      query.Streak
	Money           query.DualSeries
}

// Weekly computes the dashboard for the week ending on ref's calendar day.
func Weekly(sections []models.Section, entries []models.Entry, ref time.Time) WeeklyDashboard {
	window := query.WeekWindow(ref)

	weekdays := make([]string, len(window))
	for i, day := range window {
		weekdays[i] = day
		if t, err := utils.ParseDate(day); err == nil {
			weekdays[i] = t.Format("Mon")
		}
	}

	return WeeklyDashboard{
		Window:          window,
		Weekdays:        weekdays,
		StudyHours:      query.SumByDay(entries, window, constants.SectionGate, constants.FieldGateTime),
		JobApplications: query.SumByDay(entries, window, constants.SectionJobs, constants.FieldJobsCount),
		Activity:        query.Top(query.SectionTally(sections, entries, window), constants.DefaultTopTally),
		DietStreak:      query.BooleanStreak(entries, window, constants.SectionDiet, constants.FieldDietStuck),
		Money: query.DualSumByDay(entries, window, constants.SectionMoney,
			query.NumberField(constants.FieldMoneySpent),
			query.NumberFieldWhen(constants.FieldMoneyIncome, constants.FieldIncomeAmount)),
	}
}

// WeeklyFor is Weekly for a YYYY-MM-DD reference date.
func WeeklyFor(sections []models.Section, entries []models.Entry, date string) (WeeklyDashboard, error) {
	ref, err := utils.ParseDate(date)
	if err != nil {
		return WeeklyDashboard{}, err
	}
	return Weekly(sections, entries, ref), nil
}

// SectionDayView lists one section's entries for a day.
type SectionDayView struct {
	Section models.Section
	Date    string
	Entries []models.Entry
}

func SectionDay(section models.Section, entries []models.Entry, date string) SectionDayView {
	return SectionDayView{
		Section: section,
		Date:    date,
		Entries: query.EntriesBySectionAndDate(entries, section.ID, date),
	}
}

// FieldLine is one label/value row of an entry card.
type FieldLine struct {
	Name  string
	Value string
	Empty bool
}

// EntryLines renders an entry's data in schema order. Keys the schema does
// not know are appended in name order.
func EntryLines(section models.Section, entry models.Entry) []FieldLine {
	lines := make([]FieldLine, 0, len(section.Fields)+len(entry.Data))
	known := make(map[string]bool, len(section.Fields))

	for _, f := range section.Fields {
		known[f.ID] = true
		v, ok := entry.Data[f.ID]
		if !ok || (v.Kind != models.FieldBoolean && v.IsBlank()) {
			lines = append(lines, FieldLine{Name: f.Name, Value: notProvided, Empty: true})
			continue
		}
		lines = append(lines, FieldLine{Name: f.Name, Value: FormatValue(f, v)})
	}

	var extra []string
	for id := range entry.Data {
		if !known[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		lines = append(lines, FieldLine{Name: id, Value: entry.Data[id].String()})
	}
	return lines
}

// FormatValue renders a value for display. Ratings show their option label.
func FormatValue(f models.Field, v models.Value) string {
	switch f.Type {
	case models.FieldBoolean:
		if v.Kind == models.FieldBoolean && v.Bool {
			return "Yes"
		}
		return "No"
	case models.FieldRating:
		if opt, ok := f.Option(int(v.Number)); ok && v.Kind.IsNumeric() {
			return fmt.Sprintf("%d - %s", opt.Value, opt.Label)
		}
	}
	return v.String()
}
