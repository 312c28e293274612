// Package query derives views from a catalog and an entry snapshot. Every
// function is pure and tolerates empty input and unknown ids.
package query

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/utils"
)

func filter(entries []models.Entry, keep func(models.Entry) bool) []models.Entry {
	out := []models.Entry{}
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// EntriesByDate returns the entries attributed to date, in creation order.
func EntriesByDate(entries []models.Entry, date string) []models.Entry {
	return filter(entries, func(e models.Entry) bool { return e.Date == date })
}

// EntriesBySection returns every entry for sectionID across all dates.
func EntriesBySection(entries []models.Entry, sectionID string) []models.Entry {
	return filter(entries, func(e models.Entry) bool { return e.SectionID == sectionID })
}

func EntriesBySectionAndDate(entries []models.Entry, sectionID, date string) []models.Entry {
	return filter(entries, func(e models.Entry) bool { return e.SectionID == sectionID && e.Date == date })
}

// Completion partitions the catalog for one day. Both lists keep catalog order.
type Completion struct {
	Date      string
	Completed []models.Section
	Missing   []models.Section
}

func (c Completion) Total() int {
	return len(c.Completed) + len(c.Missing)
}

// Percent is the rounded share of completed sections, 0 for an empty catalog.
func (c Completion) Percent() int {
	if c.Total() == 0 {
		return 0
	}
	return int(math.Round(float64(len(c.Completed)) / float64(c.Total()) * 100))
}

// CompletionForDate marks a section completed when it has at least one entry
// on date. Entry contents are not inspected.
func CompletionForDate(sections []models.Section, entries []models.Entry, date string) Completion {
	present := make(map[string]bool)
	for _, e := range entries {
		if e.Date == date {
			present[e.SectionID] = true
		}
	}

	c := Completion{
		Date:      date,
		Completed: []models.Section{},
		Missing:   []models.Section{},
	}
	for _, s := range sections {
		if present[s.ID] {
			c.Completed = append(c.Completed, s)
		} else {
			c.Missing = append(c.Missing, s)
		}
	}
	return c
}

// WeekWindow returns the seven calendar days ending on ref's date, oldest
// first.
func WeekWindow(ref time.Time) []string {
	y, m, d := ref.Date()
	window := make([]string, constants.WeekLength)
	for i := 0; i < constants.WeekLength; i++ {
		day := time.Date(y, m, d-(constants.WeekLength-1-i), 0, 0, 0, 0, time.UTC)
		window[i] = utils.DateOf(day)
	}
	return window
}

// ParseWeekWindow is WeekWindow for a YYYY-MM-DD reference date.
func ParseWeekWindow(date string) ([]string, error) {
	ref, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid window reference: %w", err)
	}
	return WeekWindow(ref), nil
}
