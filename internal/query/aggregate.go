package query

import (
	"sort"

	"github.com/julianstephens/lifetrack/internal/models"
)

// Extractor reads one number from an entry's data. Missing values read as 0.
type Extractor func(models.Data) float64

// NumberField extracts a number or rating field.
func NumberField(fieldID string) Extractor {
	return func(d models.Data) float64 {
		n, _ := d.Number(fieldID)
		return n
	}
}

// NumberFieldWhen extracts numberID only when the boolean flagID is true.
func NumberFieldWhen(flagID, numberID string) Extractor {
	return func(d models.Data) float64 {
		if on, _ := d.Bool(flagID); !on {
			return 0
		}
		n, _ := d.Number(numberID)
		return n
	}
}

type DayTotal struct {
	Date  string
	Total float64
}

// Series has one element per window day, in window order.
type Series []DayTotal

func (s Series) Sum() float64 {
	var sum float64
	for _, d := range s {
		sum += d.Total
	}
	return sum
}

// bucket groups a section's entries by window day. Entries outside the
// window are dropped.
func bucket(entries []models.Entry, window []string, sectionID string) map[string][]models.Entry {
	inWindow := make(map[string]bool, len(window))
	for _, day := range window {
		inWindow[day] = true
	}
	byDay := make(map[string][]models.Entry, len(window))
	for _, e := range entries {
		if e.SectionID == sectionID && inWindow[e.Date] {
			byDay[e.Date] = append(byDay[e.Date], e)
		}
	}
	return byDay
}

func sumBy(entries []models.Entry, window []string, sectionID string, extract Extractor) Series {
	byDay := bucket(entries, window, sectionID)
	series := make(Series, len(window))
	for i, day := range window {
		series[i] = DayTotal{Date: day}
		for _, e := range byDay[day] {
			series[i].Total += extract(e.Data)
		}
	}
	return series
}

// SumByDay totals a numeric field per window day. Days without entries are 0.
func SumByDay(entries []models.Entry, window []string, sectionID, fieldID string) Series {
	return sumBy(entries, window, sectionID, NumberField(fieldID))
}

type DualDay struct {
	Date string
	A    float64
	B    float64
}

// DualSeries pairs two per-day totals over the same window.
type DualSeries struct {
	Days   []DualDay
	TotalA float64
	TotalB float64
}

// DualSumByDay applies a and b to the same entries, e.g. expenses and income.
func DualSumByDay(entries []models.Entry, window []string, sectionID string, a, b Extractor) DualSeries {
	left := sumBy(entries, window, sectionID, a)
	right := sumBy(entries, window, sectionID, b)

	out := DualSeries{Days: make([]DualDay, len(window))}
	for i, day := range window {
		out.Days[i] = DualDay{Date: day, A: left[i].Total, B: right[i].Total}
		out.TotalA += left[i].Total
		out.TotalB += right[i].Total
	}
	return out
}

// Streak is the run of qualifying days ending at the last day that had
// entries, and the longest run seen in the window.
type Streak struct {
	Current int
	Max     int
}

// BooleanStreak walks the window oldest first. A day counts when any of its
// entries has fieldID true. A day with entries but no true value resets the
// run. A day without entries is skipped.
func BooleanStreak(entries []models.Entry, window []string, sectionID, fieldID string) Streak {
	byDay := bucket(entries, window, sectionID)

	var s Streak
	for _, day := range window {
		dayEntries := byDay[day]
		if len(dayEntries) == 0 {
			continue
		}
		hit := false
		for _, e := range dayEntries {
			if v, _ := e.Data.Bool(fieldID); v {
				hit = true
				break
			}
		}
		if !hit {
			s.Current = 0
			continue
		}
		s.Current++
		if s.Current > s.Max {
			s.Max = s.Current
		}
	}
	return s
}

type SectionCount struct {
	SectionID string
	Name      string
	Count     int
}

// SectionTally counts window entries per section, busiest first. Ties keep
// catalog order, and ids missing from the catalog follow in order of first
// appearance under their raw id.
func SectionTally(sections []models.Section, entries []models.Entry, window []string) []SectionCount {
	inWindow := make(map[string]bool, len(window))
	for _, day := range window {
		inWindow[day] = true
	}

	rank := make(map[string]int, len(sections))
	names := make(map[string]string, len(sections))
	for i, s := range sections {
		if _, dup := rank[s.ID]; !dup {
			rank[s.ID] = i
			names[s.ID] = s.Name
		}
	}

	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		if !inWindow[e.Date] {
			continue
		}
		if counts[e.SectionID] == 0 {
			order = append(order, e.SectionID)
			if _, known := rank[e.SectionID]; !known {
				rank[e.SectionID] = len(sections) + len(order)
			}
		}
		counts[e.SectionID]++
	}

	tally := make([]SectionCount, 0, len(order))
	for _, id := range order {
		name, ok := names[id]
		if !ok {
			name = id
		}
		tally = append(tally, SectionCount{SectionID: id, Name: name, Count: counts[id]})
	}

	sort.SliceStable(tally, func(i, j int) bool {
		if tally[i].Count != tally[j].Count {
			return tally[i].Count > tally[j].Count
		}
		return rank[tally[i].SectionID] < rank[tally[j].SectionID]
	})
	return tally
}

// Top returns at most n counts.
func Top(tally []SectionCount, n int) []SectionCount {
	if n < 0 || len(tally) <= n {
		return tally
	}
	return tally[:n]
}
