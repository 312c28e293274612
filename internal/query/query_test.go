package query

import (
	"testing"
	"time"

	"github.com/julianstephens/lifetrack/internal/catalog"
	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/storage"
	"github.com/julianstephens/lifetrack/internal/tracker"
)

func entry(id, section, date string, data models.Data) models.Entry {
	if data == nil {
		data = models.Data{}
	}
	return models.Entry{ID: id, SectionID: section, Date: date, Data: data}
}

func ids(entries []models.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEntryFilters(t *testing.T) {
	entries := []models.Entry{
		entry("1", "gate", "2025-03-14", nil),
		entry("2", "jobs", "2025-03-14", nil),
		entry("3", "gate", "2025-03-15", nil),
		entry("4", "gate", "2025-03-14", nil),
	}

	tests := []struct {
		name string
		got  []models.Entry
		want []string
	}{
		{"by date", EntriesByDate(entries, "2025-03-14"), []string{"1", "2", "4"}},
		{"by section", EntriesBySection(entries, "gate"), []string{"1", "3", "4"}},
		{"by section and date", EntriesBySectionAndDate(entries, "gate", "2025-03-14"), []string{"1", "4"}},
		{"unknown section", EntriesBySection(entries, "nope"), []string{}},
		{"unknown date", EntriesByDate(entries, "1999-01-01"), []string{}},
		{"empty collection", EntriesByDate(nil, "2025-03-14"), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if got := ids(tt.got); !equalStrings(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompletionForDate_PartitionIsTotalAndDisjoint(t *testing.T) {
	sections := catalog.ListSections()
	date := "2025-03-14"

	collections := map[string][]models.Entry{
		"empty": nil,
		"one": {
			entry("1", "gate", date, nil),
		},
		"duplicates and other days": {
			entry("1", "diet", date, nil),
			entry("2", "diet", date, nil),
			entry("3", "money", "2025-03-13", nil),
		},
		"dangling section id": {
			entry("1", "retired-section", date, nil),
			entry("2", "ai", date, nil),
		},
		"everything": func() []models.Entry {
			var all []models.Entry
			for _, s := range sections {
				all = append(all, entry(s.ID, s.ID, date, nil))
			}
			return all
		}(),
	}

	for name, entries := range collections {
		t.Run(name, func(t *testing.T) {
			c := CompletionForDate(sections, entries, date)

			seen := make(map[string]int)
			for _, s := range c.Completed {
				seen[s.ID]++
			}
			for _, s := range c.Missing {
				seen[s.ID]++
			}
			if len(seen) != len(sections) || c.Total() != len(sections) {
				t.Fatalf("partition covers %d sections (total %d), want %d", len(seen), c.Total(), len(sections))
			}
			for id, n := range seen {
				if n != 1 {
					t.Errorf("section %s appears %d times", id, n)
				}
			}

			// catalog order is kept in both halves
			pos := make(map[string]int)
			for i, s := range sections {
				pos[s.ID] = i
			}
			for _, half := range [][]models.Section{c.Completed, c.Missing} {
				for i := 1; i < len(half); i++ {
					if pos[half[i-1].ID] > pos[half[i].ID] {
						t.Errorf("sections out of catalog order: %s before %s", half[i-1].ID, half[i].ID)
					}
				}
			}
		})
	}
}

func TestCompletionPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		missing   int
		want      int
	}{
		{"empty catalog", 0, 0, 0},
		{"none", 0, 12, 0},
		{"one of twelve", 1, 11, 8},
		{"half", 6, 6, 50},
		{"two of three", 2, 1, 67},
		{"all", 12, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Completion{
				Completed: make([]models.Section, tt.completed),
				Missing:   make([]models.Section, tt.missing),
			}
			if got := c.Percent(); got != tt.want {
				t.Errorf("Percent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeekWindow(t *testing.T) {
	refs := []time.Time{
		time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC),
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),                         // crosses a month
		time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC),                         // crosses a year
		time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),                          // leap day
		time.Date(2025, 3, 10, 1, 30, 0, 0, time.FixedZone("EST", -5*3600)), // ref zone decides the day
	}

	for _, ref := range refs {
		t.Run(ref.String(), func(t *testing.T) {
			window := WeekWindow(ref)
			if len(window) != 7 {
				t.Fatalf("expected 7 days, got %d", len(window))
			}
			for i := 1; i < len(window); i++ {
				if window[i-1] >= window[i] {
					t.Errorf("window not strictly ascending: %v", window)
				}
			}
			if last := window[6]; last != ref.Format(constants.DateFormat) {
				t.Errorf("last day = %s, want %s", last, ref.Format(constants.DateFormat))
			}
		})
	}

	leap := WeekWindow(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if leap[5] != "2024-02-29" {
		t.Errorf("expected leap day in window, got %v", leap)
	}
}

func TestParseWeekWindow(t *testing.T) {
	window, err := ParseWeekWindow("2025-01-03")
	if err != nil {
		t.Fatalf("ParseWeekWindow failed: %v", err)
	}
	want := []string{"2024-12-28", "2024-12-29", "2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02", "2025-01-03"}
	if !equalStrings(window, want) {
		t.Errorf("got %v, want %v", window, want)
	}

	if _, err := ParseWeekWindow("03/01/2025"); err == nil {
		t.Error("expected error for malformed date")
	}
}

// The scenario a user walks through on first launch.
func TestEndToEndGateEntry(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	store := tracker.New(storage.NewMemoryStore(),
		tracker.WithClock(func() time.Time { return now }),
		tracker.WithLocation(time.UTC))
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}

	sections := catalog.ListSections()
	if len(sections) != 12 {
		t.Fatalf("expected 12 sections, got %d", len(sections))
	}

	created, err := store.CreateEntry(constants.SectionGate, models.Data{
		"studied": models.BoolValue(true),
		"time":    models.NumberValue(2),
	})
	if err != nil {
		t.Fatal(err)
	}

	today := store.Today()
	c := CompletionForDate(sections, store.Entries(), today)
	if len(c.Completed) != 1 || c.Completed[0].ID != constants.SectionGate {
		t.Errorf("expected completed=[gate], got %v", c.Completed)
	}
	if len(c.Missing) != 11 {
		t.Errorf("expected 11 missing, got %d", len(c.Missing))
	}

	if _, err := store.DeleteEntry(created.ID); err != nil {
		t.Fatal(err)
	}
	c = CompletionForDate(sections, store.Entries(), today)
	if len(c.Completed) != 0 || len(c.Missing) != 12 {
		t.Errorf("after delete: completed=%d missing=%d", len(c.Completed), len(c.Missing))
	}
}
